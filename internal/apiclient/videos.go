// videos.go — операции пользовательских экранов: dashboard, каталог видео,
// детальная страница, категории.
package apiclient

import (
	"context"
	"fmt"
)

// Dashboard возвращает данные пользовательского dashboard: категории с их
// опубликованными видео, видео без категории и общий счётчик.
func (c *Client) Dashboard(ctx context.Context, ts TokenSource) (*DashboardData, error) {
	var out DashboardData
	if err := c.getJSON(ctx, ts, c.endpoints.Dashboard(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Videos возвращает список опубликованных видео.
// categoryID != nil ограничивает выборку одной категорией.
func (c *Client) Videos(ctx context.Context, ts TokenSource, categoryID *int) ([]VideoListItem, error) {
	url := c.endpoints.Videos()
	if categoryID != nil {
		url = fmt.Sprintf("%s?category=%d", url, *categoryID)
	}

	var out struct {
		Videos []VideoListItem `json:"videos"`
	}
	if err := c.getJSON(ctx, ts, url, &out); err != nil {
		return nil, err
	}
	return out.Videos, nil
}

// VideoDetail — видео и связанные с ним видео той же категории.
type VideoDetail struct {
	Video         Video           `json:"video"`
	RelatedVideos []VideoListItem `json:"related_videos"`
}

// Video возвращает детальную информацию о видео.
// ErrNotFound — видео не существует или не опубликовано.
func (c *Client) Video(ctx context.Context, ts TokenSource, id int) (*VideoDetail, error) {
	var out VideoDetail
	if err := c.getJSON(ctx, ts, c.endpoints.VideoDetail(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories возвращает список категорий видео.
func (c *Client) Categories(ctx context.Context, ts TokenSource) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	if err := c.getJSON(ctx, ts, c.endpoints.Categories(), &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CategoryVideos — категория вместе с её опубликованными видео.
type CategoryVideos struct {
	Category Category        `json:"category"`
	Videos   []VideoListItem `json:"videos"`
}

// Category возвращает категорию с её опубликованными видео.
func (c *Client) Category(ctx context.Context, ts TokenSource, id int) (*CategoryVideos, error) {
	var out CategoryVideos
	if err := c.getJSON(ctx, ts, c.endpoints.CategoryDetail(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
