// Package tmdb es el cliente de The Movie Database para póster y detalles de una película.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aadi-novice/movie-recommender/internal/logging"
	"github.com/aadi-novice/movie-recommender/internal/metrics"
	"github.com/aadi-novice/movie-recommender/internal/models"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const breakerName = "tmdb-api"

// StatusError: TMDB respondió con un status no 2xx.
type StatusError struct {
	MovieID int
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: movie %d: status %d", e.MovieID, e.Code)
}

type Options struct {
	APIKey    string
	BaseURL   string
	ImageBase string
	// Timeout por request; 0 => 10s
	Timeout time.Duration
	// RPS <= 0 => sin límite
	RPS        float64
	HTTPClient *http.Client
}

type Client struct {
	apiKey    string
	baseURL   string
	imageBase string
	timeout   time.Duration

	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*models.MovieDetails]
	log     zerolog.Logger
}

// movieResponse son los campos de GET /movie/{id} que usamos.
type movieResponse struct {
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	limit, burst := rate.Inf, 1
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
		burst = int(math.Max(1, math.Ceil(opts.RPS)))
	}

	c := &Client{
		apiKey:    opts.APIKey,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		imageBase: strings.TrimRight(opts.ImageBase, "/"),
		timeout:   opts.Timeout,
		http:      httpClient,
		limiter:   rate.NewLimiter(limit, burst),
		log:       logging.Component("tmdb"),
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c.cb = gobreaker.NewCircuitBreaker[*models.MovieDetails](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		// abre con >= 60% de fallas y al menos 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		// un 404 de una película es respuesta válida del servicio, no falla
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500 && se.Code != http.StatusTooManyRequests
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] cambio de estado")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return c
}

// Fetch trae los detalles de movieID. Sin reintentos: cualquier error se
// devuelve al caller, que decide el placeholder.
func (c *Client) Fetch(ctx context.Context, movieID int) (*models.MovieDetails, error) {
	d, err := c.cb.Execute(func() (*models.MovieDetails, error) {
		return c.fetch(ctx, movieID)
	})
	switch {
	case err == nil:
		metrics.TMDBRequests.WithLabelValues("success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.TMDBRequests.WithLabelValues("rejected").Inc()
	default:
		metrics.TMDBRequests.WithLabelValues("failure").Inc()
	}
	return d, err
}

func (c *Client) fetch(ctx context.Context, movieID int) (*models.MovieDetails, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tmdb: rate limit: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", "en-US")
	endpoint := c.baseURL + "/movie/" + strconv.Itoa(movieID) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.TMDBDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		// no loguear err tal cual: la URL lleva la api_key
		return nil, fmt.Errorf("tmdb: movie %d: %w", movieID, redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{MovieID: movieID, Code: resp.StatusCode}
	}

	var body movieResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("tmdb: movie %d: respuesta inválida: %w", movieID, err)
	}

	return &models.MovieDetails{
		PosterURL:   c.posterURL(body.PosterPath),
		ReleaseYear: releaseYear(body.ReleaseDate),
		Rating:      math.Round(body.VoteAverage*10) / 10,
		Overview:    body.Overview,
	}, nil
}

func (c *Client) posterURL(path string) string {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return ""
	}
	return c.imageBase + "/" + path
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// redact saca la URL (con api_key) de los errores de transporte.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
