package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	atlasVersion  = 1
	atlasFileName = "systems.json"
	appDirName    = "journal-relay"
)

// Atlas is the on-disk form of every system the repository has seen. It is
// kept under ~/.local/state/journal-relay (respecting XDG_STATE_HOME).
type Atlas struct {
	Version     int           `json:"version"`
	Systems     []*StarSystem `json:"systems"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// AtlasStore loads and saves an Atlas in a directory.
type AtlasStore struct {
	dir string
}

// NewAtlasStore creates a store in dir. The directory is created on the
// first Save. An empty dir means the default XDG state path.
func NewAtlasStore(dir string) *AtlasStore {
	if dir == "" {
		dir = defaultStateDir()
	}
	return &AtlasStore{dir: dir}
}

func (s *AtlasStore) Path() string {
	return filepath.Join(s.dir, atlasFileName)
}

// Load reads the atlas. A missing file gives an empty atlas.
func (s *AtlasStore) Load() (*Atlas, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Atlas{Version: atlasVersion}, nil
		}
		return nil, fmt.Errorf("reading atlas: %w", err)
	}

	var a Atlas
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing atlas: %w", err)
	}
	relinkStations(a.Systems)
	return &a, nil
}

// Save writes the atlas with a temp-file-then-rename so a crash never leaves
// a partial file behind.
func (s *AtlasStore) Save(a *Atlas) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	a.Version = atlasVersion
	a.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling atlas: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, ".systems-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("renaming atlas file: %w", err)
	}
	committed = true
	return nil
}

// Export copies every stored system into an atlas, ordered by name.
func (r *MemoryRepository) Export() *Atlas {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a := &Atlas{Version: atlasVersion, Systems: make([]*StarSystem, 0, len(r.systems))}
	for _, sys := range r.systems {
		a.Systems = append(a.Systems, sys.Clone())
	}
	sort.Slice(a.Systems, func(i, j int) bool { return a.Systems[i].Name < a.Systems[j].Name })
	return a
}

// Import adds the atlas systems, replacing any stored under the same name.
// Unnamed entries are skipped.
func (r *MemoryRepository) Import(a *Atlas) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, sys := range a.Systems {
		if sys == nil || sys.Name == "" {
			continue
		}
		r.systems[sys.Name] = sys.Clone()
		n++
	}
	return n
}

// relinkStations restores the owning system name on stations that were
// saved without one.
func relinkStations(systems []*StarSystem) {
	for _, sys := range systems {
		if sys == nil {
			continue
		}
		for _, st := range sys.Stations {
			if st.System == "" {
				st.System = sys.Name
			}
		}
	}
}

func defaultStateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "state", appDirName)
}
