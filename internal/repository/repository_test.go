package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lawfirm/internal/domain"
	"lawfirm/internal/testutil"
)

func seedArea(t *testing.T, tx *gorm.DB, name string) *domain.PracticeArea {
	t.Helper()
	area := &domain.PracticeArea{Name: name}
	require.NoError(t, CreatePracticeArea(tx, area))
	return area
}

func seedLawyer(t *testing.T, tx *gorm.DB, name string, bio *string, areaIDs ...uint) *domain.Lawyer {
	t.Helper()
	lawyer := &domain.Lawyer{FullName: name, Bio: bio}
	require.NoError(t, CreateLawyer(tx, lawyer))
	require.NoError(t, ReplacePracticeAreas(tx, lawyer, areaIDs))
	return lawyer
}

func names(lawyers []domain.Lawyer) []string {
	out := make([]string, len(lawyers))
	for i, l := range lawyers {
		out[i] = l.FullName
	}
	return out
}

func TestPracticeAreaCRUD(t *testing.T) {
	db := testutil.OpenSQLite(t)

	family := seedArea(t, db, "Family Law")
	seedArea(t, db, "Criminal Law")

	areas, err := ListPracticeAreas(db)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "Criminal Law", areas[0].Name)

	require.NoError(t, UpdatePracticeArea(db, family, Changes{"description": "Divorce and custody"}))
	got, err := GetPracticeArea(db, family.ID)
	require.NoError(t, err)
	assert.Equal(t, "Family Law", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Divorce and custody", *got.Description)

	found, err := FindPracticeAreaByName(db, "Family Law")
	require.NoError(t, err)
	assert.Equal(t, family.ID, found.ID)

	require.NoError(t, DeletePracticeArea(db, got))
	_, err = GetPracticeArea(db, family.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePracticeAreaDuplicateName(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seedArea(t, db, "Tax Law")

	err := CreatePracticeArea(db, &domain.PracticeArea{Name: "Tax Law"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestReplacePracticeAreas(t *testing.T) {
	db := testutil.OpenSQLite(t)
	family := seedArea(t, db, "Family Law")
	tax := seedArea(t, db, "Tax Law")
	lawyer := seedLawyer(t, db, "Ayşe Demir", nil, tax.ID, family.ID)

	got, err := GetLawyer(db, lawyer.ID)
	require.NoError(t, err)
	require.Len(t, got.PracticeAreas, 2)
	assert.Equal(t, "Family Law", got.PracticeAreas[0].Name)

	t.Run("unknown ids are dropped", func(t *testing.T) {
		require.NoError(t, ReplacePracticeAreas(db, got, []uint{tax.ID, 9999}))
		assert.Len(t, got.PracticeAreas, 1)

		reloaded, err := GetLawyer(db, lawyer.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.PracticeAreas, 1)
		assert.Equal(t, tax.ID, reloaded.PracticeAreas[0].ID)
	})

	t.Run("duplicate ids link once", func(t *testing.T) {
		require.NoError(t, ReplacePracticeAreas(db, got, []uint{family.ID, family.ID}))

		var count int64
		require.NoError(t, db.Model(&domain.LawyerPracticeArea{}).Where("lawyer_id = ?", lawyer.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty list clears", func(t *testing.T) {
		require.NoError(t, ReplacePracticeAreas(db, got, []uint{}))

		reloaded, err := GetLawyer(db, lawyer.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.PracticeAreas)
	})
}

func TestReplacePracticeAreasRollsBackWithTransaction(t *testing.T) {
	db := testutil.OpenSQLite(t)
	tax := seedArea(t, db, "Tax Law")
	lawyer := seedLawyer(t, db, "Mehmet Kaya", nil, tax.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ReplacePracticeAreas(tx, lawyer, nil); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	reloaded, err := GetLawyer(db, lawyer.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.PracticeAreas, 1)
}

func TestListLawyersFilters(t *testing.T) {
	db := testutil.OpenSQLite(t)
	family := seedArea(t, db, "Family Law")
	tax := seedArea(t, db, "Tax Law")

	seedLawyer(t, db, "Zeynep Arslan", testutil.Ptr("Handles custody disputes"), family.ID)
	seedLawyer(t, db, "Ann Lee", nil, family.ID, tax.ID)
	seedLawyer(t, db, "Burak Yilmaz", testutil.Ptr("Joined after years at a bank; JOANNA's mentor"), tax.ID)
	seedLawyer(t, db, "Can Ozturk", nil)

	all, err := ListLawyers(db, LawyerFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee", "Burak Yilmaz", "Can Ozturk", "Zeynep Arslan"}, names(all))

	byArea, err := ListLawyers(db, LawyerFilter{PracticeAreaID: &family.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee", "Zeynep Arslan"}, names(byArea))
	for _, l := range byArea {
		assert.NotEmpty(t, l.PracticeAreas)
	}

	search, err := ListLawyers(db, LawyerFilter{Search: "ANN"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee", "Burak Yilmaz"}, names(search))

	both, err := ListLawyers(db, LawyerFilter{PracticeAreaID: &tax.ID, Search: "ann"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann Lee", "Burak Yilmaz"}, names(both))

	both, err = ListLawyers(db, LawyerFilter{PracticeAreaID: &family.ID, Search: "custody"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeynep Arslan"}, names(both))

	none, err := ListLawyers(db, LawyerFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteLawyerCascades(t *testing.T) {
	db := testutil.OpenSQLite(t)
	tax := seedArea(t, db, "Tax Law")
	lawyer := seedLawyer(t, db, "Elif Sahin", nil, tax.ID)
	other := seedLawyer(t, db, "Omer Celik", nil, tax.ID)

	require.NoError(t, CreateCaseResult(db, &domain.CaseResult{Title: "Won appeal", LawyerID: lawyer.ID, PracticeAreaID: &tax.ID}))
	require.NoError(t, CreateTestimonial(db, &domain.Testimonial{ClientName: "Client", Content: "Great", LawyerID: lawyer.ID}))
	require.NoError(t, CreateTestimonial(db, &domain.Testimonial{ClientName: "Other", Content: "Fine", LawyerID: other.ID}))

	require.NoError(t, DeleteLawyer(db, lawyer))

	_, err := GetLawyer(db, lawyer.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.CaseResult{}).Where("lawyer_id = ?", lawyer.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.Testimonial{}).Where("lawyer_id = ?", lawyer.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.LawyerPracticeArea{}).Where("lawyer_id = ?", lawyer.ID).Count(&count).Error)
	assert.Zero(t, count)

	remaining, err := ListTestimonials(db)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].LawyerID)
}

func TestDeletePracticeAreaCascades(t *testing.T) {
	db := testutil.OpenSQLite(t)
	tax := seedArea(t, db, "Tax Law")
	lawyer := seedLawyer(t, db, "Elif Sahin", nil, tax.ID)
	require.NoError(t, CreateCaseResult(db, &domain.CaseResult{Title: "Audit closed", LawyerID: lawyer.ID, PracticeAreaID: &tax.ID}))

	require.NoError(t, DeletePracticeArea(db, tax))

	results, err := ListCaseResults(db)
	require.NoError(t, err)
	assert.Empty(t, results)

	reloaded, err := GetLawyer(db, lawyer.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.PracticeAreas)
}

func TestListCaseResultsOrder(t *testing.T) {
	db := testutil.OpenSQLite(t)
	lawyer := seedLawyer(t, db, "Elif Sahin", nil)

	day := func(y int, m time.Month, d int) *time.Time {
		v := domain.NewDate(y, m, d).Midnight()
		return &v
	}
	for _, cr := range []domain.CaseResult{
		{Title: "B undated", LawyerID: lawyer.ID},
		{Title: "Old", ResolvedOn: day(2019, time.March, 1), LawyerID: lawyer.ID},
		{Title: "Recent b", ResolvedOn: day(2024, time.June, 30), LawyerID: lawyer.ID},
		{Title: "A undated", LawyerID: lawyer.ID},
		{Title: "Recent a", ResolvedOn: day(2024, time.June, 30), LawyerID: lawyer.ID},
		{Title: "Middle", ResolvedOn: day(2021, time.December, 12), LawyerID: lawyer.ID},
	} {
		cr := cr
		require.NoError(t, CreateCaseResult(db, &cr))
	}

	results, err := ListCaseResults(db)
	require.NoError(t, err)

	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Title
		require.NotNil(t, r.Lawyer)
		assert.Equal(t, "Elif Sahin", r.Lawyer.FullName)
	}
	assert.Equal(t, []string{"Recent a", "Recent b", "Middle", "Old", "A undated", "B undated"}, titles)

	require.NotNil(t, results[0].ResolvedOn)
	assert.Equal(t, "2024-06-30", domain.DateOf(*results[0].ResolvedOn).String())
}

func TestCaseResultRequiresExistingLawyer(t *testing.T) {
	db := testutil.OpenSQLite(t)

	err := CreateCaseResult(db, &domain.CaseResult{Title: "Orphan", LawyerID: 4242})
	assert.Error(t, err)
}

func TestLanguagesRoundTripAndFallback(t *testing.T) {
	db := testutil.OpenSQLite(t)

	lawyer := &domain.Lawyer{FullName: "Deniz Aksoy", Languages: domain.Languages{"tr", "en"}}
	require.NoError(t, CreateLawyer(db, lawyer))

	got, err := GetLawyer(db, lawyer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Languages{"tr", "en"}, got.Languages)

	require.NoError(t, db.Exec("UPDATE lawyers SET languages = ? WHERE id = ?", "Turkish, English", lawyer.ID).Error)

	got, err = GetLawyer(db, lawyer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Languages{}, got.Languages)
}

func TestContactMessagesNewestFirst(t *testing.T) {
	db := testutil.OpenSQLite(t)
	base := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, CreateContactMessage(db, &domain.ContactMessage{FullName: "First", Email: "a@example.com", Message: "hi", CreatedAt: base}))
	require.NoError(t, CreateContactMessage(db, &domain.ContactMessage{FullName: "Second", Email: "b@example.com", Message: "hi", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, CreateContactMessage(db, &domain.ContactMessage{FullName: "Now", Email: "c@example.com", Message: "hi"}))

	messages, err := ListContactMessages(db)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "Now", messages[0].FullName)
	assert.Equal(t, "Second", messages[1].FullName)
	assert.Equal(t, "First", messages[2].FullName)
}
