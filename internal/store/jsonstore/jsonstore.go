package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/idilsaglam/trip/internal/model"
)

// JSON-backed storage. Single file, human-readable, portable.
// Commands of the TUI call in from their own goroutines, hence the mutex.

// DefaultFileName is used when no path is configured.
const DefaultFileName = "trip.json"

var ErrNotFound = errors.New("point not found")

// Document is everything the file holds.
type Document struct {
	Points       []model.Point            `json:"points"`
	Offers       model.OfferCatalog       `json:"offers"`
	Destinations model.DestinationCatalog `json:"destinations"`
}

type Store struct {
	mu      sync.Mutex
	path    string
	latency time.Duration
}

type Option func(*Store)

// WithLatency delays every write, which makes in-flight states visible.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

func New(path string, opts ...Option) *Store {
	if path == "" {
		path = DefaultFileName
	}
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// Load reads the document. A missing file is an empty document.
func (s *Store) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// UpdatePoint replaces the stored point with the same id.
func (s *Store) UpdatePoint(ctx context.Context, p model.Point) (model.Point, error) {
	if err := s.wait(ctx); err != nil {
		return model.Point{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return model.Point{}, err
	}
	for i := range doc.Points {
		if doc.Points[i].ID == p.ID {
			doc.Points[i] = p.Clone()
			if err := s.save(doc); err != nil {
				return model.Point{}, err
			}
			return p.Clone(), nil
		}
	}
	return model.Point{}, fmt.Errorf("update %s: %w", p.ID, ErrNotFound)
}

func (s *Store) DeletePoint(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for i := range doc.Points {
		if doc.Points[i].ID == id {
			doc.Points = append(doc.Points[:i], doc.Points[i+1:]...)
			return s.save(doc)
		}
	}
	return fmt.Errorf("delete %s: %w", id, ErrNotFound)
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (s *Store) load() (Document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{Offers: model.OfferCatalog{}, Destinations: model.DestinationCatalog{}}, nil
		}
		return Document{}, fmt.Errorf("read file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.Offers == nil {
		doc.Offers = model.OfferCatalog{}
	}
	if doc.Destinations == nil {
		doc.Destinations = model.DestinationCatalog{}
	}
	return doc, nil
}

func (s *Store) save(doc Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
