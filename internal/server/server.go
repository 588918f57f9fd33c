// Package server exposes the services over HTTP on a goa muxer.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"

	"lawfirm/internal/config"
	"lawfirm/internal/metrics"
	"lawfirm/internal/services"
	"lawfirm/pkg/logger"
)

// PracticeAreaService is the practice area use case set.
type PracticeAreaService interface {
	List(ctx context.Context) ([]services.PracticeAreaView, error)
	Get(ctx context.Context, id uint) (*services.PracticeAreaView, error)
	Create(ctx context.Context, p *services.PracticeAreaPayload) (*services.PracticeAreaView, error)
	Update(ctx context.Context, id uint, p *services.PracticeAreaUpdatePayload) (*services.PracticeAreaView, error)
	Delete(ctx context.Context, id uint) error
}

// LawyerService is the lawyer use case set.
type LawyerService interface {
	List(ctx context.Context, filter services.LawyerFilter) ([]services.LawyerView, error)
	Get(ctx context.Context, id uint) (*services.LawyerDetailView, error)
	Create(ctx context.Context, p *services.LawyerPayload) (*services.LawyerView, error)
	Update(ctx context.Context, id uint, p *services.LawyerUpdatePayload) (*services.LawyerView, error)
	Delete(ctx context.Context, id uint) error
}

// CaseResultService is the case result use case set.
type CaseResultService interface {
	List(ctx context.Context) ([]services.CaseResultView, error)
	Get(ctx context.Context, id uint) (*services.CaseResultView, error)
	Create(ctx context.Context, p *services.CaseResultPayload) (*services.CaseResultView, error)
	Update(ctx context.Context, id uint, p *services.CaseResultUpdatePayload) (*services.CaseResultView, error)
	Delete(ctx context.Context, id uint) error
}

// TestimonialService is the testimonial use case set.
type TestimonialService interface {
	List(ctx context.Context) ([]services.TestimonialView, error)
	Get(ctx context.Context, id uint) (*services.TestimonialView, error)
	Create(ctx context.Context, p *services.TestimonialPayload) (*services.TestimonialView, error)
	Update(ctx context.Context, id uint, p *services.TestimonialUpdatePayload) (*services.TestimonialView, error)
	Delete(ctx context.Context, id uint) error
}

// ContactService is the contact message use case set.
type ContactService interface {
	List(ctx context.Context) ([]services.ContactMessageView, error)
	Create(ctx context.Context, p *services.ContactMessagePayload) (*services.ContactMessageView, error)
}

// HealthService answers the banner and health endpoints.
type HealthService interface {
	Banner(ctx context.Context) *services.BannerResult
	Check(ctx context.Context) *services.HealthResult
	Ready(ctx context.Context) (*services.HealthResult, error)
}

// Services groups everything the server mounts.
type Services struct {
	Health        HealthService
	PracticeAreas PracticeAreaService
	Lawyers       LawyerService
	CaseResults   CaseResultService
	Testimonials  TestimonialService
	Contact       ContactService
}

// Server routes requests to the services.
type Server struct {
	mux     goahttp.Muxer
	svc     Services
	log     zerolog.Logger
	handler http.Handler
}

// New mounts every route and wraps the muxer in the middleware chain:
// security headers, CORS, request ID, request logging, Prometheus, goa
// request context, muxer.
func New(cfg *config.Config, svc Services, log zerolog.Logger) *Server {
	s := &Server{
		mux: goahttp.NewMuxer(),
		svc: svc,
		log: logger.Component(log, "http"),
	}
	s.mount()

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			promhttp.Handler().ServeHTTP(w, r)
			return
		}
		s.mux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = middleware.PopulateRequestContext()(h)
	h = metrics.PrometheusMiddleware(h)
	h = requestLogging(h, s.log)
	h = middleware.RequestID(middleware.UseXRequestIDHeaderOption(true))(h)
	h = cors(h, cfg.CORS)
	h = securityHeaders(h, cfg.App.Debug)
	s.handler = h
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) mount() {
	s.mux.Handle(http.MethodGet, "/", s.banner)
	s.mux.Handle(http.MethodGet, "/health", s.health)
	s.mux.Handle(http.MethodGet, "/health/ready", s.ready)

	pa := s.svc.PracticeAreas
	s.mux.Handle(http.MethodGet, "/practice-areas", listHandler(s, pa.List))
	s.mux.Handle(http.MethodPost, "/practice-areas", createHandler(s, pa.Create))
	s.mux.Handle(http.MethodGet, "/practice-areas/{id}", getHandler(s, pa.Get))
	s.mux.Handle(http.MethodPut, "/practice-areas/{id}", updateHandler(s, pa.Update))
	s.mux.Handle(http.MethodDelete, "/practice-areas/{id}", deleteHandler(s, pa.Delete))

	l := s.svc.Lawyers
	s.mux.Handle(http.MethodGet, "/lawyers", s.listLawyers)
	s.mux.Handle(http.MethodPost, "/lawyers", createHandler(s, l.Create))
	s.mux.Handle(http.MethodGet, "/lawyers/{id}", getHandler(s, l.Get))
	s.mux.Handle(http.MethodPut, "/lawyers/{id}", updateHandler(s, l.Update))
	s.mux.Handle(http.MethodDelete, "/lawyers/{id}", deleteHandler(s, l.Delete))

	cr := s.svc.CaseResults
	s.mux.Handle(http.MethodGet, "/case-results", listHandler(s, cr.List))
	s.mux.Handle(http.MethodPost, "/case-results", createHandler(s, cr.Create))
	s.mux.Handle(http.MethodGet, "/case-results/{id}", getHandler(s, cr.Get))
	s.mux.Handle(http.MethodPut, "/case-results/{id}", updateHandler(s, cr.Update))
	s.mux.Handle(http.MethodDelete, "/case-results/{id}", deleteHandler(s, cr.Delete))

	t := s.svc.Testimonials
	s.mux.Handle(http.MethodGet, "/testimonials", listHandler(s, t.List))
	s.mux.Handle(http.MethodPost, "/testimonials", createHandler(s, t.Create))
	s.mux.Handle(http.MethodGet, "/testimonials/{id}", getHandler(s, t.Get))
	s.mux.Handle(http.MethodPut, "/testimonials/{id}", updateHandler(s, t.Update))
	s.mux.Handle(http.MethodDelete, "/testimonials/{id}", deleteHandler(s, t.Delete))

	c := s.svc.Contact
	s.mux.Handle(http.MethodGet, "/contact-messages", listHandler(s, c.List))
	s.mux.Handle(http.MethodPost, "/contact-messages", createHandler(s, c.Create))
}

func (s *Server) banner(w http.ResponseWriter, r *http.Request) {
	encode(w, r, http.StatusOK, s.svc.Health.Banner(r.Context()))
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	encode(w, r, http.StatusOK, s.svc.Health.Check(r.Context()))
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Health.Ready(r.Context())
	if err != nil {
		s.log.Warn().Err(err).Msg("readiness check failed")
		encode(w, r, http.StatusServiceUnavailable, &services.HealthResult{Status: "unavailable"})
		return
	}
	encode(w, r, http.StatusOK, res)
}

// listLawyers reads the practiceAreaId and search query parameters.
func (s *Server) listLawyers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter services.LawyerFilter
	if raw := strings.TrimSpace(q.Get("practiceAreaId")); raw != "" {
		id, err := parseID(raw, "practiceAreaId")
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		filter.PracticeAreaID = &id
	}
	filter.Search = q.Get("search")

	lawyers, err := s.svc.Lawyers.List(r.Context(), filter)
	if err != nil {
		s.encodeError(w, r, err)
		return
	}
	encode(w, r, http.StatusOK, lawyers)
}

func listHandler[V any](s *Server, list func(context.Context) ([]V, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		encode(w, r, http.StatusOK, items)
	}
}

func getHandler[V any](s *Server, get func(context.Context, uint) (*V, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.pathID(r)
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		item, err := get(r.Context(), id)
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		encode(w, r, http.StatusOK, item)
	}
}

func createHandler[P, V any](s *Server, create func(context.Context, *P) (*V, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload P
		if err := decode(r, &payload); err != nil {
			s.encodeError(w, r, err)
			return
		}
		item, err := create(r.Context(), &payload)
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		encode(w, r, http.StatusCreated, item)
	}
}

func updateHandler[P, V any](s *Server, update func(context.Context, uint, *P) (*V, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.pathID(r)
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		var payload P
		if err := decode(r, &payload); err != nil {
			s.encodeError(w, r, err)
			return
		}
		item, err := update(r.Context(), id, &payload)
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		encode(w, r, http.StatusOK, item)
	}
}

func deleteHandler(s *Server, del func(context.Context, uint) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := s.pathID(r)
		if err != nil {
			s.encodeError(w, r, err)
			return
		}
		if err := del(r.Context(), id); err != nil {
			s.encodeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
