package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"sweetcrumb/internal/domain/models"
	"sweetcrumb/internal/lib/logger/sl"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type staticPage struct {
	path       string
	changeFreq string
	priority   string
}

var staticPages = []staticPage{
	{"/", "weekly", "1.0"},
	{"/menu", "weekly", "0.9"},
	{"/rate-list", "weekly", "0.9"},
	{"/gallery", "weekly", "0.8"},
	{"/blog", "daily", "0.8"},
	{"/events", "weekly", "0.7"},
	{"/reviews", "weekly", "0.6"},
}

// PostSource lists the slugs of publicly visible blog posts.
type PostSource interface {
	PublicSlugs(ctx context.Context) ([]models.BlogPost, error)
}

type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type SitemapService struct {
	log     *slog.Logger
	siteURL string
	posts   PostSource
	now     func() time.Time
}

func NewSitemapService(log *slog.Logger, siteURL string, posts PostSource) *SitemapService {
	return &SitemapService{
		log:     log,
		siteURL: strings.TrimRight(siteURL, "/"),
		posts:   posts,
		now:     time.Now,
	}
}

// Build renders the sitemap document, XML header included.
func (s *SitemapService) Build(ctx context.Context) ([]byte, error) {
	const op = "sitemap_service.Build"

	posts, err := s.posts.PublicSlugs(ctx)
	if err != nil {
		s.log.Error("failed to list blog slugs", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	today := s.now().UTC().Format(time.DateOnly)
	set := URLSet{
		XMLNS: sitemapNS,
		URLs:  make([]URL, 0, len(staticPages)+len(posts)),
	}

	for _, p := range staticPages {
		set.URLs = append(set.URLs, URL{
			Loc:        s.siteURL + p.path,
			LastMod:    today,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}

	for _, post := range posts {
		set.URLs = append(set.URLs, URL{
			Loc:        s.siteURL + "/blog/" + url.PathEscape(post.Slug),
			LastMod:    post.UpdatedAt.UTC().Format(time.DateOnly),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return append([]byte(xml.Header), body...), nil
}
