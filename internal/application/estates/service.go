package estates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"estates-backend/internal/application/filters"
	"estates-backend/internal/application/listview"
	"estates-backend/internal/application/normalizer"
	"estates-backend/internal/application/pagination"
	"estates-backend/internal/domain"
	"estates-backend/internal/infrastructure/estatesapi"
	"estates-backend/internal/infrastructure/fallback"

	"github.com/rs/zerolog/log"
)

// Source tells where a result's listings came from.
type Source string

const (
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

const (
	WarnNotConfigured   = "API no configurada. Mostrando datos de ejemplo."
	WarnLoadFailed      = "Error al cargar datos reales. Mostrando ejemplos."
	WarnEmpty           = "No se encontraron propiedades en la base de datos. Mostrando ejemplos."
	WarnAdminLoadFailed = "No se pudieron cargar las propiedades. Por favor, intenta de nuevo más tarde."
	WarnAdminEmpty      = "No se encontraron propiedades en la base de datos."
)

var (
	ErrListingNotFound = errors.New("Propiedad no encontrada")
	ErrAdminLoad       = errors.New(WarnAdminLoadFailed)
	ErrMissingID       = errors.New("estates API returned a listing without id")
)

// Service serves the public catalog and the admin back office on top of the
// remote estates API.
type Service struct {
	API          estatesapi.Client
	RemoteFilter bool
	PageSize     int
	Now          func() time.Time
}

// Result is a loaded collection.
type Result struct {
	Listings []domain.PropertyListing
	Source   Source
	Warning  string
}

// SearchResult is one page of the public catalog.
type SearchResult struct {
	Page     pagination.Page[domain.PropertyListing]
	Links    []pagination.Link
	Stats    listview.Stats
	Filter   filters.Spec
	Filtered bool
	Source   Source
	Warning  string
}

func (s *Service) configured() bool {
	return s.API != nil && s.API.Configured()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) pageSize(requested int) int {
	if requested > 0 {
		return requested
	}
	if s.PageSize > 0 {
		return s.PageSize
	}
	return pagination.DefaultPageSize
}

// Load fetches every listing. It never fails: when the API is unconfigured,
// unreachable or empty the sample listings are returned with a warning.
func (s *Service) Load(ctx context.Context) Result {
	if !s.configured() {
		return Result{Listings: fallback.Estates(), Source: SourceFallback, Warning: WarnNotConfigured}
	}
	raw, err := s.API.GetAllEstates(ctx)
	if err != nil {
		log.Warn().Err(err).Str("source", string(SourceFallback)).Msg("estates: load failed, serving sample listings")
		return Result{Listings: fallback.Estates(), Source: SourceFallback, Warning: WarnLoadFailed}
	}
	listings := normalizer.Normalize(raw)
	if len(listings) == 0 {
		log.Warn().Str("source", string(SourceFallback)).Msg("estates: API returned no listings, serving sample listings")
		return Result{Listings: fallback.Estates(), Source: SourceFallback, Warning: WarnEmpty}
	}
	log.Debug().Int("count", len(listings)).Str("source", string(SourceAPI)).Msg("estates: loaded")
	return Result{Listings: listings, Source: SourceAPI}
}

// Search filters and paginates the catalog. Stats always describe the full collection.
func (s *Service) Search(ctx context.Context, spec filters.Spec, page, pageSize int) SearchResult {
	res := s.Load(ctx)
	state := listview.New(res.Listings, s.pageSize(pageSize))

	if matches, ok := s.remoteMatches(ctx, res.Source, spec); ok {
		state = listview.Reduce(state, listview.ApplyMatches{Spec: spec, Matches: matches})
	} else {
		state = listview.Reduce(state, listview.ApplyFilter{Spec: spec})
	}
	state = listview.Reduce(state, listview.GoToPage{Page: page})

	return SearchResult{
		Page:     state.Visible(),
		Links:    state.Links(),
		Stats:    state.Stats(),
		Filter:   state.Filter,
		Filtered: state.IsFiltered(),
		Source:   res.Source,
		Warning:  res.Warning,
	}
}

// remoteMatches asks the API to filter. Any failure falls back to local filtering.
func (s *Service) remoteMatches(ctx context.Context, source Source, spec filters.Spec) ([]domain.PropertyListing, bool) {
	if !s.RemoteFilter || source != SourceAPI || spec.IsEmpty() {
		return nil, false
	}
	raw, err := s.API.FilterEstates(ctx, spec.Values())
	if err != nil {
		log.Warn().Err(err).Msg("estates: remote filter failed, filtering locally")
		return nil, false
	}
	return normalizer.Normalize(raw), true
}

// Get returns one listing, looking it up in the loaded collection when the
// API cannot answer for it directly.
func (s *Service) Get(ctx context.Context, id string) (domain.PropertyListing, Source, error) {
	if s.configured() {
		raw, err := s.API.GetEstateByID(ctx, id)
		if err == nil {
			if l, ok := normalizer.NormalizeOne(raw, id); ok {
				return l, SourceAPI, nil
			}
		} else {
			log.Warn().Err(err).Str("id", id).Msg("estates: get by id failed")
		}
	}
	res := s.Load(ctx)
	state := listview.New(res.Listings, s.pageSize(0))
	if l, ok := state.Find(id); ok {
		return l, res.Source, nil
	}
	return domain.PropertyListing{}, res.Source, ErrListingNotFound
}

// AdminResult is one page of the back office table.
type AdminResult struct {
	Page    pagination.Page[domain.PropertyListing]
	Links   []pagination.Link
	Stats   listview.Stats
	Warning string
}

// AdminList lists real listings only; q matches title, location, city or code.
func (s *Service) AdminList(ctx context.Context, q string, page, pageSize int) (AdminResult, error) {
	if !s.configured() {
		return AdminResult{}, estatesapi.ErrNotConfigured
	}
	raw, err := s.API.GetAllEstates(ctx)
	if err != nil {
		log.Error().Err(err).Msg("estates: admin load failed")
		return AdminResult{}, fmt.Errorf("%w: %v", ErrAdminLoad, err)
	}
	state := listview.New(normalizer.Normalize(raw), s.pageSize(pageSize))
	if q != "" {
		state = listview.Reduce(state, listview.ApplyMatches{Matches: searchText(state.All, q)})
	}
	state = listview.Reduce(state, listview.GoToPage{Page: page})

	out := AdminResult{Page: state.Visible(), Links: state.Links(), Stats: state.Stats()}
	if len(state.All) == 0 {
		out.Warning = WarnAdminEmpty
	}
	return out, nil
}

func searchText(all []domain.PropertyListing, q string) []domain.PropertyListing {
	out := make([]domain.PropertyListing, 0, len(all))
	for _, l := range all {
		if filters.ContainsFolded(l.Title, q) ||
			filters.ContainsFolded(l.Location, q) ||
			filters.ContainsFolded(domain.StringValue(l.City), q) ||
			filters.ContainsFolded(domain.StringValue(l.PropertyCode), q) {
			out = append(out, l)
		}
	}
	return out
}

// Create validates in and stores it through the API.
func (s *Service) Create(ctx context.Context, in EstateInput) (domain.PropertyListing, error) {
	if err := in.Validate(); err != nil {
		return domain.PropertyListing{}, err
	}
	if !s.configured() {
		return domain.PropertyListing{}, estatesapi.ErrNotConfigured
	}
	in.syncImages()
	if in.PropertyCode == "" {
		in.PropertyCode = generatePropertyCode(s.now())
	}
	in.CreatedAt = s.now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(in)
	if err != nil {
		return domain.PropertyListing{}, err
	}
	raw, err := s.API.CreateEstate(ctx, body)
	if err != nil {
		return domain.PropertyListing{}, err
	}
	created, ok := normalizer.NormalizeOne(raw, "")
	if !ok || created.ID == "" {
		return domain.PropertyListing{}, ErrMissingID
	}
	log.Info().Str("id", created.ID).Msg("estates: created")
	return created, nil
}

// Update validates in, sends it to the API and merges the answer over the
// current record. id and createdAt never change.
func (s *Service) Update(ctx context.Context, id string, in EstateInput) (domain.PropertyListing, error) {
	if err := in.Validate(); err != nil {
		return domain.PropertyListing{}, err
	}
	if !s.configured() {
		return domain.PropertyListing{}, estatesapi.ErrNotConfigured
	}
	prevRaw, err := s.API.GetEstateByID(ctx, id)
	if err != nil {
		return domain.PropertyListing{}, notFound(err)
	}
	prev, ok := normalizer.NormalizeOne(prevRaw, id)
	if !ok {
		return domain.PropertyListing{}, ErrListingNotFound
	}

	in.syncImages()
	in.CreatedAt = ""
	body, err := json.Marshal(in)
	if err != nil {
		return domain.PropertyListing{}, err
	}
	raw, err := s.API.UpdateEstate(ctx, id, body)
	if err != nil {
		return domain.PropertyListing{}, notFound(err)
	}

	state := listview.New([]domain.PropertyListing{prev}, 1)
	state = listview.Reduce(state, listview.Update{ID: prev.ID, Patch: body})
	if rec, ok := normalizer.Unwrap(raw); ok {
		state = listview.Reduce(state, listview.Update{ID: prev.ID, Patch: rec})
	}
	updated, _ := state.Find(prev.ID)
	log.Info().Str("id", id).Msg("estates: updated")
	return updated, nil
}

// Delete removes a listing through the API.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.configured() {
		return estatesapi.ErrNotConfigured
	}
	if err := s.API.DeleteEstate(ctx, id); err != nil {
		return notFound(err)
	}
	log.Info().Str("id", id).Msg("estates: deleted")
	return nil
}

func notFound(err error) error {
	var apiErr *estatesapi.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ErrListingNotFound
	}
	return err
}
