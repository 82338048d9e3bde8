// Package config loads folio configuration from TOML or YAML files.
//
// Values are resolved in order: `default` struct tags, the config file,
// then FOLIO_* environment variables. The result is validated before use.
//
//	cfg, err := config.Load(path) // "" searches the default location
//	vp := viewport.New(src, w, h, viewport.WithOptions(cfg.Viewport.Options()))
package config

import (
	"time"

	"github.com/matzehuels/folio/pkg/cache"
	"github.com/matzehuels/folio/pkg/sheet"
	"github.com/matzehuels/folio/pkg/viewport"
)

// Config is the complete folio configuration.
type Config struct {
	Editor    Editor    `toml:"editor" yaml:"editor" json:"editor"`
	Viewport  Viewport  `toml:"viewport" yaml:"viewport" json:"viewport"`
	Selection Selection `toml:"selection" yaml:"selection" json:"selection"`
	Cache     Cache     `toml:"cache" yaml:"cache" json:"cache"`
	Server    Server    `toml:"server" yaml:"server" json:"server"`
	Log       Log       `toml:"log" yaml:"log" json:"log"`
}

// Editor holds the settings applied to new worksheets.
type Editor struct {
	PageFormat string  `toml:"page_format" yaml:"page_format" json:"page_format" default:"A4" validate:"oneof=A4 B5 A5"`
	Columns    int     `toml:"columns" yaml:"columns" json:"columns" default:"12" validate:"oneof=1 2 3 6 12"`
	Gap        string  `toml:"gap" yaml:"gap" json:"gap" default:"medium" validate:"oneof=none small medium large"`
	FontSize   float64 `toml:"font_size" yaml:"font_size" json:"font_size" default:"16" validate:"min=6,max=96"`
	Mode       string  `toml:"mode" yaml:"mode" json:"mode" default:"grid" validate:"oneof=grid freeform masonry"`
	Background string  `toml:"background" yaml:"background" json:"background" default:"#ffffff" validate:"hexcolor"`
}

// Settings converts the editor section into worksheet settings.
func (e Editor) Settings() sheet.Settings {
	return sheet.Settings{
		Format:     sheet.PageFormat(e.PageFormat),
		Columns:    e.Columns,
		Gap:        sheet.GridGap(e.Gap),
		FontSize:   e.FontSize,
		Mode:       sheet.LayoutMode(e.Mode),
		Background: e.Background,
	}
}

// Viewport holds zoom bounds and input sensitivities.
type Viewport struct {
	MinZoom          float64 `toml:"min_zoom" yaml:"min_zoom" json:"min_zoom" default:"0.4" validate:"gt=0"`
	MaxZoom          float64 `toml:"max_zoom" yaml:"max_zoom" json:"max_zoom" default:"1.5" validate:"gtfield=MinZoom"`
	DefaultZoom      float64 `toml:"default_zoom" yaml:"default_zoom" json:"default_zoom" default:"0.8" validate:"gtefield=MinZoom,ltefield=MaxZoom"`
	WheelSensitivity float64 `toml:"wheel_sensitivity" yaml:"wheel_sensitivity" json:"wheel_sensitivity" default:"0.0025" validate:"gt=0"`
	PinchSensitivity float64 `toml:"pinch_sensitivity" yaml:"pinch_sensitivity" json:"pinch_sensitivity" default:"0.01" validate:"gt=0"`
	PinchThreshold   float64 `toml:"pinch_threshold" yaml:"pinch_threshold" json:"pinch_threshold" default:"50" validate:"gt=0"`
	ZoomStep         float64 `toml:"zoom_step" yaml:"zoom_step" json:"zoom_step" default:"0.1" validate:"gt=0,lt=1"`
}

// Options converts the section into viewport options.
func (v Viewport) Options() viewport.Options {
	return viewport.Options{
		MinZoom:          v.MinZoom,
		MaxZoom:          v.MaxZoom,
		DefaultZoom:      v.DefaultZoom,
		WheelSensitivity: v.WheelSensitivity,
		PinchSensitivity: v.PinchSensitivity,
		PinchThreshold:   v.PinchThreshold,
		ZoomStep:         v.ZoomStep,
	}.Normalize()
}

// Selection tunes the lasso.
type Selection struct {
	LassoThreshold float64 `toml:"lasso_threshold" yaml:"lasso_threshold" json:"lasso_threshold" default:"10" validate:"min=0"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend         string `toml:"backend" yaml:"backend" json:"backend" default:"file" validate:"oneof=file redis mongo none"`
	Dir             string `toml:"dir" yaml:"dir" json:"dir"`
	RedisAddr       string `toml:"redis_addr" yaml:"redis_addr" json:"redis_addr" default:"localhost:6379" validate:"required_if=Backend redis"`
	RedisPassword   string `toml:"redis_password" yaml:"redis_password" json:"-"`
	RedisDB         int    `toml:"redis_db" yaml:"redis_db" json:"redis_db" validate:"min=0"`
	MongoURI        string `toml:"mongo_uri" yaml:"mongo_uri" json:"-" default:"mongodb://localhost:27017" validate:"required_if=Backend mongo"`
	MongoDatabase   string `toml:"mongo_database" yaml:"mongo_database" json:"mongo_database" default:"folio"`
	MongoCollection string `toml:"mongo_collection" yaml:"mongo_collection" json:"mongo_collection" default:"cache"`
}

// Options converts the section into cache.Open options.
func (c Cache) Options() cache.Options {
	return cache.Options{
		Backend: c.Backend,
		Dir:     c.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   "folio:",
		},
		Mongo: cache.MongoOptions{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		},
	}
}

// Server configures the HTTP service.
type Server struct {
	Addr         string        `toml:"addr" yaml:"addr" json:"addr" default:":8080" validate:"required"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout" json:"read_timeout" default:"10s"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout" json:"write_timeout" default:"30s"`
	MaxBodyBytes int64         `toml:"max_body_bytes" yaml:"max_body_bytes" json:"max_body_bytes" default:"10485760" validate:"gt=0"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level" yaml:"level" json:"level" default:"info" validate:"oneof=debug info warn error"`
}
