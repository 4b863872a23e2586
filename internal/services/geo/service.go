// Package geo locates the network owner of an IP address. When a local
// MaxMind database is configured it is preferred; otherwise a public
// HTTP geolocation provider is queried.
package geo

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/imroc/req/v3"
	"github.com/oschwald/geoip2-golang"

	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// Service resolves IP geolocation from a local database or an HTTP API.
type Service struct {
	http    *req.Client
	logger  *slog.Logger
	baseURL string
	db      *geoip2.Reader
}

// NewService creates a new geolocation service. dbPath may be empty;
// when set, the database is opened eagerly so a bad path fails at
// startup rather than mid-batch.
func NewService(http *req.Client, logger *slog.Logger, baseURL, dbPath string) (*Service, error) {
	s := &Service{http: http, logger: logger, baseURL: baseURL}
	if dbPath != "" {
		db, err := geoip2.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("%w: open geoip database %q: %w", services.ErrInvalidInput, dbPath, err)
		}
		s.db = db
	}
	return s, nil
}

// Close releases the local database, if one is open.
func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Name returns the service identifier.
func (s *Service) Name() string { return "geo" }

// AggregateResults combines multiple geo results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run locates ip, preferring the local database when available.
func (s *Service) Run(ctx context.Context, ip string) (services.Result, error) {
	tgt, err := target.Parse(ip)
	if err != nil {
		return nil, err
	}
	if !tgt.IsIP() {
		return nil, fmt.Errorf("%w: geolocation applies to IP addresses, got %q", services.ErrInvalidInput, ip)
	}
	if s.db != nil {
		return s.fromDatabase(tgt.Input)
	}
	return s.fromAPI(ctx, tgt.Input)
}

func (s *Service) fromDatabase(ip string) (*Result, error) {
	city, err := s.db.City(net.ParseIP(ip))
	if err != nil {
		return nil, fmt.Errorf("%w: geoip database lookup for %q: %w", services.ErrRequestFailed, ip, err)
	}
	result := &Result{
		Input:   ip,
		City:    city.City.Names["en"],
		Country: city.Country.Names["en"],
		Source:  "mmdb",
	}
	if len(city.Subdivisions) > 0 {
		result.Region = city.Subdivisions[0].Names["en"]
	}
	return result, nil
}

type apiResponse struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
	Org         string `json:"org"`
	ASN         string `json:"asn"`
}

func (s *Service) fromAPI(ctx context.Context, ip string) (*Result, error) {
	var body apiResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetPathParam("ip", ip).
		SetSuccessResult(&body).
		Get(s.baseURL + "/{ip}/json/")
	if err != nil {
		return nil, fmt.Errorf("%w: geolocation api: %w", services.ErrRequestFailed, err)
	}
	if resp.IsErrorState() {
		return nil, fmt.Errorf("%w: geolocation api: status %d", services.ErrRequestFailed, resp.StatusCode)
	}
	return &Result{
		Input:   ip,
		City:    body.City,
		Region:  body.Region,
		Country: body.CountryName,
		Org:     body.Org,
		ASN:     body.ASN,
		Source:  "api",
	}, nil
}
