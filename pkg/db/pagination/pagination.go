// Package pagination implements cursor-based pagination over
// (created_at, id) keysets.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

// Cursor identifies the last row of a page.
type Cursor struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

var ErrInvalidPageToken = errors.New("invalid_page_token")

func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodeCursor(token string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidPageToken
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, ErrInvalidPageToken
	}
	if c.ID == "" || c.CreatedAt == "" {
		return Cursor{}, ErrInvalidPageToken
	}
	return c, nil
}

// BuildCursorPageInfo inspects an over-fetched result set (pageSize+1 rows)
// and derives the next-page token from the last row inside the page. The
// caller truncates the extra row.
func BuildCursorPageInfo[T any](items []T, pageSize int32, token func(T) string) *PageInfo {
	if pageSize <= 0 || len(items) <= int(pageSize) {
		return &PageInfo{}
	}
	return &PageInfo{
		HasMore:       true,
		NextPageToken: token(items[pageSize-1]),
	}
}
