package cli

import (
	"strings"

	"go.uber.org/zap"

	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/project"
	"github.com/contactdavinciera/douglas-guedes-portfolio-sub000/internal/timecode"
)

// openStore returns the store for --project, falling back to the
// configured default path.
func openStore() (*project.Store, error) {
	path := projectPath
	if path == "" {
		path = cfg.Project.DefaultPath
	}
	return project.NewStore(path, logger.Named("store"))
}

// readSession opens the project for inspection. Nothing is locked or
// written.
func readSession() (*project.Store, *project.Session, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	s, err := project.Open(p, logger)
	if err != nil {
		return nil, nil, err
	}
	return store, s, nil
}

// editSession runs fn against the locked project and saves the result when
// fn succeeds. A failed edit leaves the file untouched.
func editSession(fn func(s *project.Session) error) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := store.Unlock(); err != nil {
			logger.Warn("unlock failed", zap.Error(err))
		}
	}()

	p, err := store.Load()
	if err != nil {
		return err
	}
	s, err := project.Open(p, logger)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return store.Save(s.Capture())
}

// parseTime reads seconds or HH:MM:SS:FF at the session's rate.
func parseTime(s *project.Session, arg string) (timecode.Time, error) {
	return timecode.ParseAny(arg, s.Timeline.Rate())
}

func tc(s *project.Session, t timecode.Time) string {
	return timecode.Format(t, s.Timeline.Rate())
}

// splitTags reads a comma separated flag value.
func splitTags(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
