// Package sources wires every adapter into a registry: the hand-written
// sources, the built-in template sites and any sites declared in a YAML
// sites file.
package sources

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/mangasrc/internal/providers"
	"github.com/brogergvhs/mangasrc/internal/sources/boylove"
	"github.com/brogergvhs/mangasrc/internal/sources/tcbscans"
	"github.com/brogergvhs/mangasrc/internal/templates/iken"
	"github.com/brogergvhs/mangasrc/internal/templates/liliana"
)

const (
	TemplateIken    = "iken"
	TemplateLiliana = "liliana"
)

// Site is one template-backed site.
type Site struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Template string `yaml:"template"`
	BaseURL  string `yaml:"base_url"`

	// iken
	APIURL               string `yaml:"api_url,omitempty"`
	UseSlugSeriesKeys    bool   `yaml:"use_slug_series_keys,omitempty"`
	FetchFullChapterList bool   `yaml:"fetch_full_chapter_list,omitempty"`

	// liliana
	UsesPostSearch bool                `yaml:"uses_post_search,omitempty"`
	Listings       []providers.Listing `yaml:"listings,omitempty"`
	Selectors      liliana.Selectors   `yaml:"selectors,omitempty"`
}

type sitesFile struct {
	Sites []Site `yaml:"sites"`
}

var Builtin = []Site{
	{Key: "en.vortexscans", Name: "Vortex Scans", Template: TemplateIken,
		BaseURL: "https://vortexscans.org", APIURL: "https://api.vortexscans.org"},
	{Key: "en.aurorascans", Name: "Aurora Scans", Template: TemplateIken,
		BaseURL: "https://aurorascans.com", APIURL: "https://api.aurorascans.com"},
	{Key: "en.hivescans", Name: "Hive Scans", Template: TemplateIken,
		BaseURL: "https://hivetoons.org", APIURL: "https://api.hivetoons.org"},
	{Key: "en.nyxscans", Name: "Nyx Scans", Template: TemplateIken,
		BaseURL: "https://nyxscans.com", APIURL: "https://api.nyxscans.com"},
	{Key: "es.eternalmangas", Name: "Eternal Mangas", Template: TemplateIken,
		BaseURL: "https://eternalmangas.com", APIURL: "https://api.eternalmangas.com"},
	{Key: "ar.promanga", Name: "ProManga", Template: TemplateIken,
		BaseURL: "https://promanga.net", UseSlugSeriesKeys: true, FetchFullChapterList: true},

	{Key: "en.mangasect", Name: "Manga Sect", Template: TemplateLiliana,
		BaseURL: "https://mangasect.net", UsesPostSearch: true},
	{Key: "en.manhuagold", Name: "Manhua Gold", Template: TemplateLiliana,
		BaseURL: "https://manhuagold.top", UsesPostSearch: true},
	{Key: "en.manhuaplusorg", Name: "ManhuaPlus", Template: TemplateLiliana,
		BaseURL: "https://manhuaplus.org"},
	{Key: "ja.manga1000", Name: "Manga1000", Template: TemplateLiliana,
		BaseURL: "https://manga1000.top"},
	{Key: "ja.raw1001", Name: "Raw1001", Template: TemplateLiliana,
		BaseURL: "https://raw1001.net"},
	{Key: "ja.rawkuro", Name: "RawKuro", Template: TemplateLiliana,
		BaseURL: "https://rawkuro.net"},
	{Key: "vi.doctruyen5s", Name: "DocTruyen5s", Template: TemplateLiliana,
		BaseURL: "https://dongmoe.com"},
}

func (s *Site) normalizeAndValidate() error {
	s.Key = strings.TrimSpace(s.Key)
	s.Name = strings.TrimSpace(s.Name)
	s.Template = strings.ToLower(strings.TrimSpace(s.Template))
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	s.APIURL = strings.TrimRight(strings.TrimSpace(s.APIURL), "/")

	if s.Key == "" {
		return fmt.Errorf("key is required")
	}
	if s.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if s.Name == "" {
		s.Name = s.Key
	}

	switch s.Template {
	case TemplateIken, TemplateLiliana:
	default:
		return fmt.Errorf("unknown template %q", s.Template)
	}

	return nil
}

func (s Site) enabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Source builds the adapter for s.
func (s Site) Source(client *http.Client, log providers.Logger) (providers.Source, error) {
	if err := s.normalizeAndValidate(); err != nil {
		return nil, fmt.Errorf("site %q: %w", s.Key, err)
	}

	switch s.Template {
	case TemplateIken:
		return iken.New(client, iken.Params{
			Key:                  s.Key,
			Name:                 s.Name,
			BaseURL:              s.BaseURL,
			APIURL:               s.APIURL,
			UseSlugSeriesKeys:    s.UseSlugSeriesKeys,
			FetchFullChapterList: s.FetchFullChapterList,
		}, log), nil
	default:
		return liliana.New(client, liliana.Params{
			Key:            s.Key,
			Name:           s.Name,
			BaseURL:        s.BaseURL,
			UsesPostSearch: s.UsesPostSearch,
			Listings:       s.Listings,
			Selectors:      s.Selectors,
		}, log), nil
	}
}

// LoadFile reads extra sites from path. A blank or missing path yields no
// sites.
func LoadFile(path string) ([]Site, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sites file: %w", err)
	}

	var f sitesFile
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("parse sites file %s: %w", path, err)
	}

	out := make([]Site, 0, len(f.Sites))
	for _, s := range f.Sites {
		if !s.enabled() {
			continue
		}
		if err := s.normalizeAndValidate(); err != nil {
			return nil, fmt.Errorf("sites file %s: site %q: %w", path, s.Key, err)
		}
		out = append(out, s)
	}

	return out, nil
}

// Options configures NewRegistry.
type Options struct {
	Client *http.Client
	Log    providers.Logger
	// Extra sites are registered after the built-in ones and may not reuse
	// their keys.
	Extra []Site
}

// NewRegistry registers every source. Sites that fail to build are
// reported together; the ones that did build stay registered.
func NewRegistry(opts Options) (*providers.Registry, error) {
	reg := providers.NewRegistry()
	var failures []string

	add := func(src providers.Source, err error) {
		if err == nil {
			err = reg.Register(src)
		}
		if err != nil {
			failures = append(failures, err.Error())
		}
	}

	add(boylove.New(opts.Client, boylove.Params{}, opts.Log), nil)
	add(tcbscans.New(opts.Client, tcbscans.Params{}, opts.Log), nil)

	for _, s := range Builtin {
		add(s.Source(opts.Client, opts.Log))
	}
	for _, s := range opts.Extra {
		add(s.Source(opts.Client, opts.Log))
	}

	if len(failures) > 0 {
		return reg, fmt.Errorf("sources failed to load: %s", strings.Join(failures, " | "))
	}
	return reg, nil
}
