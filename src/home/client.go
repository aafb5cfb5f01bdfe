package home

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAPIBase      = "https://api.battle.pokemon-home.com"
	DefaultResourceBase = "https://resource.pokemon-home.com"
	DefaultUserAgent    = "Mozilla/5.0 (Linux; Android 8.0; Pixel 2 Build/OPD3.170816.012) AppleWebKit/537.36"
	acceptHeader        = "application/json, text/javascript, */*; q=0.01"
)

type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d for %s", e.StatusCode, e.Url)
}

type Options struct {
	APIBase      string
	ResourceBase string
	Soft         string
	Lang         string
	UserAgent    string
	Timeout      time.Duration
}

type Client struct {
	apiBase      string
	resourceBase string
	soft         string
	lang         string
	userAgent    string
	client       *http.Client
	sugar        *zap.SugaredLogger
}

func NewClient(sugar *zap.SugaredLogger, opts Options) *Client {
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	if opts.ResourceBase == "" {
		opts.ResourceBase = DefaultResourceBase
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		apiBase:      strings.TrimRight(opts.APIBase, "/"),
		resourceBase: strings.TrimRight(opts.ResourceBase, "/"),
		soft:         opts.Soft,
		lang:         opts.Lang,
		userAgent:    opts.UserAgent,
		client:       &http.Client{Timeout: opts.Timeout},
		sugar:        sugar,
	}
}

func (c *Client) doAndDecode(req *http.Request, target any) error {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Url: req.URL.String(), StatusCode: resp.StatusCode}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decoding %s: %w", req.URL, err)
	}
	return nil
}

func (c *Client) getAndDecode(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.doAndDecode(req, target)
}

func (c *Client) ListSeasons(ctx context.Context) (*SeasonList, error) {
	url := c.apiBase + "/tt/cbd/competition/rankmatch/list"
	body, err := json.Marshal(SeasonListRequest{Soft: c.soft, Lang: c.lang})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.sugar.Infof("Fetching season list %s", url)
	var result SeasonList
	if err := c.doAndDecode(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) rankingUrl(cid string, rst int, ts int64, resource string) string {
	return fmt.Sprintf("%s/battledata/ranking/scvi/%s/%d/%d/%s", c.resourceBase, cid, rst, ts, resource)
}

func (c *Client) GetRanking(ctx context.Context, cid string, rst int, ts int64) (*Ranking, error) {
	url := c.rankingUrl(cid, rst, ts, "pokemon")
	c.sugar.Infof("Fetching ranking %s", url)
	var ranking Ranking
	if err := c.getAndDecode(ctx, url, &ranking); err != nil {
		return nil, err
	}
	return &ranking, nil
}

func (c *Client) GetDetailPage(ctx context.Context, cid string, rst int, ts int64, page int) (DetailPage, error) {
	url := c.rankingUrl(cid, rst, ts, fmt.Sprintf("pdetail-%d", page))
	c.sugar.Infof("Fetching detail page %s", url)
	var detail DetailPage
	if err := c.getAndDecode(ctx, url, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}
