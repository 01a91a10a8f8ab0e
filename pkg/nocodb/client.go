package nocodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultPageSize = 100

var (
	// ErrNotConfigured - не указан адрес API или таблица
	ErrNotConfigured = errors.New("nocodb client is not configured")
	// ErrUnexpectedStatus - API вернул код, отличный от 200
	ErrUnexpectedStatus = errors.New("nocodb returned unexpected status")
)

type Config struct {
	BaseURL  string
	APIKey   string
	ViewID   string
	Table    string
	PageSize int
	Timeout  time.Duration
}

// Record - одна запись таблицы NocoDB
type Record map[string]any

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured проверяет, можно ли обращаться к API
func (c *Client) Configured() bool {
	return c.cfg.BaseURL != "" && c.cfg.Table != ""
}

// Source описывает источник для логов и метаданных снимка
func (c *Client) Source() string {
	return fmt.Sprintf("%s/api/v2/tables/%s", c.cfg.BaseURL, c.cfg.Table)
}

type listResponse struct {
	List []Record `json:"list"`
}

// ListRecords выгружает все записи таблицы постранично.
// Выгрузка заканчивается, когда страница короче размера страницы.
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var all []Record
	for offset := 0; ; offset += c.cfg.PageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, fmt.Errorf("fetching records at offset %d: %w", offset, err)
		}
		all = append(all, page...)

		if len(page) < c.cfg.PageSize {
			break
		}
	}
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) ([]Record, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(c.cfg.PageSize))
	params.Set("where", "")
	params.Set("viewId", c.cfg.ViewID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Source()+"/records?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("xc-token", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var page listResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return page.List, nil
}
