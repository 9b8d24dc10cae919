// Package assets resolves named sprite keys to drawable sprites.
// A Catalog is loaded in full before a game starts; Require is the barrier
// that refuses to start a game whose sprites are not all present.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/core"
)

//go:embed sprites.yaml
var defaultSheetYAML []byte

// ErrMissingSprite is returned when a required sprite key is not in the catalog.
var ErrMissingSprite = errors.New("assets: missing sprite")

// Sprite keys used by the game.
const (
	KeyDinoRun1     = "dino_run_1"
	KeyDinoRun2     = "dino_run_2"
	KeyDinoDuck1    = "dino_duck_1"
	KeyDinoDuck2    = "dino_duck_2"
	KeyDinoJump     = "dino_jump"
	KeySmallCactus1 = "small_cactus_1"
	KeySmallCactus2 = "small_cactus_2"
	KeyLargeCactus1 = "large_cactus_1"
	KeyLargeCactus2 = "large_cactus_2"
	KeyPtero1       = "ptero_1"
	KeyPtero2       = "ptero_2"
	KeyTrack        = "track"
)

// RequiredKeys lists every sprite the game draws.
var RequiredKeys = []string{
	KeyDinoRun1, KeyDinoRun2,
	KeyDinoDuck1, KeyDinoDuck2,
	KeyDinoJump,
	KeySmallCactus1, KeySmallCactus2,
	KeyLargeCactus1, KeyLargeCactus2,
	KeyPtero1, KeyPtero2,
	KeyTrack,
}

// Sprite is a drawable image with a known size in world units.
type Sprite struct {
	Key    string
	Width  float64    // World units, used for bounding boxes
	Height float64    // World units, used for bounding boxes
	Art    []string   // One string per terminal row
	Color  core.Color // Foreground color for every art cell
	Tile   bool       // Repeat art horizontally to cover Width
}

// Size returns the sprite's world size.
func (s *Sprite) Size() (w, h float64) {
	return s.Width, s.Height
}

// Catalog holds loaded sprites by key.
type Catalog struct {
	sprites map[string]*Sprite
}

type sheetFile struct {
	Sprites map[string]spriteSpec `yaml:"sprites"`
}

type spriteSpec struct {
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Color  string   `yaml:"color"`
	Tile   bool     `yaml:"tile"`
	Art    []string `yaml:"art"`
}

// Load reads a sprite sheet from path, or the embedded sheet when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultSheetYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot read sprite sheet %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog built from the embedded sprite sheet.
func Default() (*Catalog, error) {
	return Parse(defaultSheetYAML)
}

// Parse decodes a YAML sprite sheet.
func Parse(data []byte) (*Catalog, error) {
	var sheet sheetFile
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("assets: cannot parse sprite sheet: %w", err)
	}

	c := &Catalog{sprites: make(map[string]*Sprite, len(sheet.Sprites))}
	for key, spec := range sheet.Sprites {
		if spec.Width <= 0 || spec.Height <= 0 {
			return nil, fmt.Errorf("assets: sprite %q has no size", key)
		}
		if len(spec.Art) == 0 {
			return nil, fmt.Errorf("assets: sprite %q has no art", key)
		}
		c.sprites[key] = &Sprite{
			Key:    key,
			Width:  spec.Width,
			Height: spec.Height,
			Art:    spec.Art,
			Color:  core.ParseColor(spec.Color),
			Tile:   spec.Tile,
		}
	}
	return c, nil
}

// Get returns the sprite for key.
func (c *Catalog) Get(key string) (*Sprite, error) {
	s, ok := c.sprites[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingSprite, key)
	}
	return s, nil
}

// Require returns an error naming every key that is not loaded.
func (c *Catalog) Require(keys ...string) error {
	var errs []error
	for _, k := range keys {
		if _, err := c.Get(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Keys returns the loaded sprite keys, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.sprites))
	for k := range c.sprites {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
