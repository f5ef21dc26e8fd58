package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/RostHarcha/clickup-tracker/models"
)

const defaultBaseURL = "https://api.clickup.com"

// Client talks to the ClickUp API v2. One instance owns one connection
// pool; release it with Close once the caller is done.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
}

// NewClient builds a client authenticated with apiToken. An empty baseURL
// selects the production API; tests override it.
func NewClient(baseURL, apiToken string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		token:   apiToken,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Close releases idle connections held by the client. Call it exactly once
// per instance, whether or not any request succeeded.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Info("clickup request",
		slog.String("method", http.MethodGet),
		slog.String("url", u.String()),
		slog.Int("status", resp.StatusCode),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("clickup: unexpected status %d for %s: %s", resp.StatusCode, u.Path, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("clickup: decode %s: %w", u.Path, err)
	}
	return nil
}

type spaceList struct {
	Spaces []models.Space `json:"spaces"`
}

type folderList struct {
	Folders []models.Folder `json:"folders"`
}

type trackedTimeList struct {
	Data []models.TrackedTime `json:"data"`
}

// GetSpaces lists the spaces of a team.
func (c *Client) GetSpaces(ctx context.Context, teamID int64) ([]models.Space, error) {
	var list spaceList
	if err := c.get(ctx, fmt.Sprintf("/api/v2/team/%d/space", teamID), nil, &list); err != nil {
		return nil, err
	}
	return list.Spaces, nil
}

// GetFolders lists the folders of a space.
func (c *Client) GetFolders(ctx context.Context, spaceID int64) ([]models.Folder, error) {
	var list folderList
	if err := c.get(ctx, fmt.Sprintf("/api/v2/space/%d/folder", spaceID), nil, &list); err != nil {
		return nil, err
	}
	return list.Folders, nil
}

// GetTrackedTime lists time entries of a folder whose start timestamp falls
// in [start, end]. Bounds are transmitted as epoch milliseconds; the API
// treats them as inclusive.
func (c *Client) GetTrackedTime(ctx context.Context, teamID int64, start, end time.Time, folderID int64) ([]models.TrackedTime, error) {
	q := url.Values{}
	q.Set("start_date", strconv.FormatInt(start.UnixMilli(), 10))
	q.Set("end_date", strconv.FormatInt(end.UnixMilli(), 10))
	q.Set("folder_id", strconv.FormatInt(folderID, 10))

	var list trackedTimeList
	if err := c.get(ctx, fmt.Sprintf("/api/v2/team/%d/time_entries", teamID), q, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// GetTeamFolders discovers all folders of a team: spaces first, then the
// folders of every space fetched concurrently, flattened in space order.
func (c *Client) GetTeamFolders(ctx context.Context, teamID int64) ([]models.Folder, error) {
	spaces, err := c.GetSpaces(ctx, teamID)
	if err != nil {
		return nil, err
	}

	results := make([][]models.Folder, len(spaces))
	errs := make([]error, len(spaces))
	var wg sync.WaitGroup
	for i, space := range spaces {
		wg.Add(1)
		go func(i int, spaceID int64) {
			defer wg.Done()
			results[i], errs[i] = c.GetFolders(ctx, spaceID)
		}(i, space.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var folders []models.Folder
	for _, r := range results {
		folders = append(folders, r...)
	}
	return folders, nil
}

// FolderTrackedTime pairs a folder with its time entries for a range.
type FolderTrackedTime struct {
	Folder  models.Folder
	Entries []models.TrackedTime
}

// GetTeamTrackedTime composes folder discovery with a concurrent per-folder
// time-entry fetch. Result i always corresponds to folder i; a count
// mismatch between requests and responses is an error, never a silent
// truncation.
func (c *Client) GetTeamTrackedTime(ctx context.Context, teamID int64, start, end time.Time) ([]FolderTrackedTime, error) {
	folders, err := c.GetTeamFolders(ctx, teamID)
	if err != nil {
		return nil, err
	}

	type indexed struct {
		i       int
		entries []models.TrackedTime
		err     error
	}
	ch := make(chan indexed, len(folders))
	for i, folder := range folders {
		go func(i int, folderID int64) {
			entries, err := c.GetTrackedTime(ctx, teamID, start, end, folderID)
			ch <- indexed{i: i, entries: entries, err: err}
		}(i, folder.ID)
	}

	results := make([]FolderTrackedTime, len(folders))
	received := 0
	for range folders {
		r := <-ch
		if r.err != nil {
			return nil, r.err
		}
		if r.i < 0 || r.i >= len(folders) {
			return nil, fmt.Errorf("clickup: time entry result index %d out of range for %d folders", r.i, len(folders))
		}
		results[r.i] = FolderTrackedTime{Folder: folders[r.i], Entries: r.entries}
		received++
	}
	if received != len(folders) {
		return nil, fmt.Errorf("clickup: got %d time entry results for %d folders", received, len(folders))
	}
	return results, nil
}
