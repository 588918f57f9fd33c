package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lawfirm/internal/domain"
	"lawfirm/internal/testutil"
	apperrors "lawfirm/pkg/errors"
)

type fixture struct {
	db           *gorm.DB
	areas        *PracticeAreaService
	lawyers      *LawyerService
	caseResults  *CaseResultService
	testimonials *TestimonialService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenSQLite(t)
	log := zerolog.Nop()
	return &fixture{
		db:           db,
		areas:        NewPracticeAreaService(db, log),
		lawyers:      NewLawyerService(db, log),
		caseResults:  NewCaseResultService(db, log),
		testimonials: NewTestimonialService(db, log),
	}
}

func (f *fixture) area(t *testing.T, name string) *PracticeAreaView {
	t.Helper()
	view, err := f.areas.Create(context.Background(), &PracticeAreaPayload{Name: &name})
	require.NoError(t, err)
	return view
}

func (f *fixture) lawyer(t *testing.T, name string, areaIDs ...uint) *LawyerView {
	t.Helper()
	view, err := f.lawyers.Create(context.Background(), &LawyerPayload{FullName: &name, PracticeAreaIDs: areaIDs})
	require.NoError(t, err)
	return view
}

func decode[T any](t *testing.T, body string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return &v
}

func areaIDs(views []PracticeAreaView) []uint {
	ids := make([]uint, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

func TestPracticeAreaUniqueName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.area(t, "Family Law")
	got, err := f.areas.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Family Law", got.Name)

	_, err = f.areas.Create(ctx, &PracticeAreaPayload{Name: testutil.Ptr("Family Law")})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err), "got %v", err)

	other := f.area(t, "Tax Law")
	_, err = f.areas.Update(ctx, other.ID, decode[PracticeAreaUpdatePayload](t, `{"name": "Family Law"}`))
	assert.True(t, apperrors.IsConflict(err), "got %v", err)
}

func TestPracticeAreaUpdateClearsDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.areas.Create(ctx, &PracticeAreaPayload{
		Name:        testutil.Ptr("Criminal Law"),
		Description: testutil.Ptr("Defense"),
	})
	require.NoError(t, err)

	updated, err := f.areas.Update(ctx, created.ID, decode[PracticeAreaUpdatePayload](t, `{}`))
	require.NoError(t, err)
	require.NotNil(t, updated.Description)

	updated, err = f.areas.Update(ctx, created.ID, decode[PracticeAreaUpdatePayload](t, `{"description": null}`))
	require.NoError(t, err)
	assert.Equal(t, "Criminal Law", updated.Name)
	assert.Nil(t, updated.Description)
}

func TestNotFoundMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	check := func(err error, message string) {
		t.Helper()
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, message, appErr.Message)
	}

	_, err := f.areas.Get(ctx, 42)
	check(err, "practice area not found")
	_, err = f.lawyers.Get(ctx, 42)
	check(err, "lawyer not found")
	_, err = f.caseResults.Get(ctx, 42)
	check(err, "case result not found")
	_, err = f.testimonials.Get(ctx, 42)
	check(err, "testimonial not found")

	check(f.areas.Delete(ctx, 42), "practice area not found")
	check(f.lawyers.Delete(ctx, 42), "lawyer not found")
	check(f.caseResults.Delete(ctx, 42), "case result not found")
	check(f.testimonials.Delete(ctx, 42), "testimonial not found")

	_, err = f.lawyers.Update(ctx, 42, decode[LawyerUpdatePayload](t, `{"bio": "x"}`))
	check(err, "lawyer not found")
}

func TestLawyerPracticeAreaReplacement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	family := f.area(t, "Family Law")
	tax := f.area(t, "Tax Law")

	lawyer := f.lawyer(t, "Ayşe Demir", tax.ID, family.ID, 777)
	assert.Equal(t, []uint{family.ID, tax.ID}, areaIDs(lawyer.PracticeAreas))

	updated, err := f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"title": "Partner"}`))
	require.NoError(t, err)
	assert.Equal(t, []uint{family.ID, tax.ID}, areaIDs(updated.PracticeAreas))
	assert.Equal(t, "Partner", *updated.Title)

	updated, err = f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"practice_area_ids": null}`))
	require.NoError(t, err)
	assert.Len(t, updated.PracticeAreas, 2)

	updated, err = f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"practice_area_ids": [999]}`))
	require.NoError(t, err)
	assert.Empty(t, updated.PracticeAreas)

	updated, err = f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"practice_area_ids": [`+itoa(tax.ID)+`]}`))
	require.NoError(t, err)
	assert.Equal(t, []uint{tax.ID}, areaIDs(updated.PracticeAreas))

	updated, err = f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"practice_area_ids": []}`))
	require.NoError(t, err)
	assert.Empty(t, updated.PracticeAreas)
	assert.NotNil(t, updated.PracticeAreas)
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestLawyerLanguages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	lawyer := f.lawyer(t, "Deniz Aksoy")
	assert.Equal(t, domain.Languages{}, lawyer.Languages)

	_, err := f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"languages": ["tr", "en"]}`))
	require.NoError(t, err)

	got, err := f.lawyers.Get(ctx, lawyer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Languages{"tr", "en"}, got.Languages)

	_, err = f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"languages": null, "bio": "Arbitration"}`))
	require.NoError(t, err)
	got, err = f.lawyers.Get(ctx, lawyer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Languages{"tr", "en"}, got.Languages)
	assert.Equal(t, "Arbitration", *got.Bio)
}

func TestLawyerEmailUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.lawyers.Create(ctx, &LawyerPayload{FullName: testutil.Ptr("A"), Email: testutil.Ptr("a@firm.example")})
	require.NoError(t, err)
	_, err = f.lawyers.Create(ctx, &LawyerPayload{FullName: testutil.Ptr("B"), Email: testutil.Ptr("a@firm.example")})
	assert.True(t, apperrors.IsConflict(err), "got %v", err)

	// Absent emails never collide.
	_, err = f.lawyers.Create(ctx, &LawyerPayload{FullName: testutil.Ptr("C"), Email: testutil.Ptr("")})
	require.NoError(t, err)
	_, err = f.lawyers.Create(ctx, &LawyerPayload{FullName: testutil.Ptr("D")})
	require.NoError(t, err)
}

func TestCaseResultLawyerNameFollowsRename(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tax := f.area(t, "Tax Law")
	lawyer := f.lawyer(t, "Elif Sahin", tax.ID)

	resolved := domain.NewDate(2024, time.May, 2)
	created, err := f.caseResults.Create(ctx, &CaseResultPayload{
		Title:          testutil.Ptr("Tax assessment annulled"),
		ResolvedOn:     &resolved,
		LawyerID:       &lawyer.ID,
		PracticeAreaID: &tax.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Elif Sahin", *created.LawyerName)
	assert.Equal(t, "Tax Law", *created.PracticeAreaName)
	assert.Equal(t, "2024-05-02", created.ResolvedOn.String())

	_, err = f.lawyers.Update(ctx, lawyer.ID, decode[LawyerUpdatePayload](t, `{"full_name": "Elif Sahin-Kaya"}`))
	require.NoError(t, err)

	got, err := f.caseResults.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elif Sahin-Kaya", *got.LawyerName)

	list, err := f.caseResults.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Elif Sahin-Kaya", *list[0].LawyerName)

	detail, err := f.lawyers.Get(ctx, lawyer.ID)
	require.NoError(t, err)
	require.Len(t, detail.CaseResults, 1)
	assert.Equal(t, "Elif Sahin-Kaya", *detail.CaseResults[0].LawyerName)
	assert.Equal(t, "Tax Law", *detail.CaseResults[0].PracticeAreaName)

	updated, err := f.caseResults.Update(ctx, created.ID, decode[CaseResultUpdatePayload](t, `{"practice_area_id": null, "resolved_on": null}`))
	require.NoError(t, err)
	assert.Nil(t, updated.PracticeAreaName)
	assert.Nil(t, updated.PracticeAreaID)
	assert.Nil(t, updated.ResolvedOn)
	assert.Equal(t, "Tax assessment annulled", updated.Title)
}

func TestDanglingLawyerIsBadRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.caseResults.Create(ctx, &CaseResultPayload{Title: testutil.Ptr("Orphan"), LawyerID: testutil.Ptr(uint(404))})
	assert.True(t, apperrors.IsBadRequest(err), "got %v", err)

	_, err = f.testimonials.Create(ctx, &TestimonialPayload{
		ClientName: testutil.Ptr("Client"),
		Content:    testutil.Ptr("Thanks"),
		LawyerID:   testutil.Ptr(uint(404)),
	})
	assert.True(t, apperrors.IsBadRequest(err), "got %v", err)

	list, err := f.testimonials.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTestimonialLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.lawyer(t, "Omer Celik")
	second := f.lawyer(t, "Selin Tas")

	created, err := f.testimonials.Create(ctx, &TestimonialPayload{
		ClientName: testutil.Ptr("Client"),
		Content:    testutil.Ptr("Clear advice"),
		Rating:     testutil.Ptr(5),
		LawyerID:   &first.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Omer Celik", *created.LawyerName)

	_, err = f.testimonials.Update(ctx, created.ID, decode[TestimonialUpdatePayload](t, `{"rating": 6}`))
	assert.True(t, apperrors.IsValidation(err), "got %v", err)

	updated, err := f.testimonials.Update(ctx, created.ID, decode[TestimonialUpdatePayload](t, `{"lawyer_id": `+itoa(second.ID)+`, "rating": null}`))
	require.NoError(t, err)
	assert.Equal(t, "Selin Tas", *updated.LawyerName)
	assert.Nil(t, updated.Rating)
	assert.Equal(t, "Clear advice", updated.Content)

	require.NoError(t, f.testimonials.Delete(ctx, created.ID))
	_, err = f.testimonials.Get(ctx, created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteLawyerRemovesDependents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tax := f.area(t, "Tax Law")
	lawyer := f.lawyer(t, "Elif Sahin", tax.ID)

	_, err := f.caseResults.Create(ctx, &CaseResultPayload{Title: testutil.Ptr("Won"), LawyerID: &lawyer.ID})
	require.NoError(t, err)
	_, err = f.testimonials.Create(ctx, &TestimonialPayload{
		ClientName: testutil.Ptr("Client"),
		Content:    testutil.Ptr("Great"),
		LawyerID:   &lawyer.ID,
	})
	require.NoError(t, err)

	require.NoError(t, f.lawyers.Delete(ctx, lawyer.ID))

	results, err := f.caseResults.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
	testimonials, err := f.testimonials.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, testimonials)

	area, err := f.areas.Get(ctx, tax.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tax Law", area.Name)
}

func TestValidationStopsBeforeStorage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lawyer := f.lawyer(t, "Elif Sahin")

	_, err := f.testimonials.Create(ctx, &TestimonialPayload{
		ClientName: testutil.Ptr("Client"),
		Content:    testutil.Ptr("Great"),
		Rating:     testutil.Ptr(0),
		LawyerID:   &lawyer.ID,
	})
	assert.True(t, apperrors.IsValidation(err))

	list, err := f.testimonials.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLawyerListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	family := f.area(t, "Family Law")

	f.lawyer(t, "Zeynep Arslan", family.ID)
	f.lawyer(t, "Hannah Berg", family.ID)
	f.lawyer(t, "Joanna Kurt")

	list, err := f.lawyers.List(ctx, LawyerFilter{PracticeAreaID: &family.ID, Search: "ANN"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hannah Berg", list[0].FullName)

	list, err = f.lawyers.List(ctx, LawyerFilter{Search: "ann"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Hannah Berg", list[0].FullName)
	assert.Equal(t, "Joanna Kurt", list[1].FullName)
}

func TestStorageErrorPassesAppErrors(t *testing.T) {
	original := apperrors.NotFound("lawyer not found")
	assert.Same(t, original, storageError(original, "x", "y"))
	assert.NoError(t, storageError(nil, "x", "y"))

	err := storageError(errors.New("disk I/O error"), "x", "y")
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))
}
