package service

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"suryaghar_backend/internals/features/home/sections/model"
)

//go:embed default_content.yaml
var defaultContent []byte

// Section names served by /content/:section.
var Sections = []string{"hero", "urgency", "about", "vacancies", "requirements", "process", "faq", "links"}

type ContentService struct {
	Path string
	Now  func() time.Time

	mu  sync.RWMutex
	cur model.Content
}

// NewContentService loads the embedded sections and merges the file at path
// over them. An empty path serves the defaults only.
func NewContentService(path string) (*ContentService, error) {
	s := &ContentService{Path: path, Now: time.Now}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func decode(data []byte) (model.Content, error) {
	var c model.Content
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return model.Content{}, err
	}
	return c, nil
}

func (s *ContentService) load() (model.Content, error) {
	base, err := decode(defaultContent)
	if err != nil {
		return model.Content{}, fmt.Errorf("default content: %w", err)
	}
	if s.Path == "" {
		return base, nil
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] content file %s not found, serving defaults", s.Path)
		return base, nil
	}
	if err != nil {
		return model.Content{}, err
	}
	override, err := decode(data)
	if err != nil {
		return model.Content{}, fmt.Errorf("%s: %w", s.Path, err)
	}
	deadline := base.Hero.Deadline
	if err := mergo.Merge(&base, override, mergo.WithOverride); err != nil {
		return model.Content{}, err
	}
	if override.Hero.Deadline.IsZero() {
		base.Hero.Deadline = deadline
	}
	return base, nil
}

// Reload re-reads the content. On error the previous content stays live.
func (s *ContentService) Reload() error {
	c, err := s.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = c
	s.mu.Unlock()
	return nil
}

func (s *ContentService) Content() model.Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *ContentService) Countdown() model.Countdown {
	return model.NewCountdown(s.Content().Hero.Deadline, s.Now())
}

func (s *ContentService) Section(name string) (any, bool) {
	c := s.Content()
	switch name {
	case "hero":
		return c.Hero, true
	case "urgency":
		return c.Urgency, true
	case "about":
		return c.About, true
	case "vacancies":
		return c.Vacancies, true
	case "requirements":
		return c.Requirements, true
	case "process":
		return c.Process, true
	case "faq":
		return c.FAQ, true
	case "links":
		return c.Links, true
	}
	return nil, false
}

// Watch reloads the content whenever the override file changes. The watcher
// follows the directory so editors that replace the file are seen too. It
// stops when ctx is done; the returned channel closes after that.
func (s *ContentService) Watch(ctx context.Context) (<-chan struct{}, error) {
	done := make(chan struct{})
	if s.Path == "" {
		close(done)
		return done, nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	target := filepath.Clean(s.Path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		_ = w.Close()
		return nil, err
	}

	go func() {
		defer close(done)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				if err := s.Reload(); err != nil {
					log.Printf("[ERROR] reload content %s: %v", target, err)
					continue
				}
				log.Printf("[INFO] 📝 content reloaded from %s", target)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] content watcher: %v", err)
			}
		}
	}()
	return done, nil
}
