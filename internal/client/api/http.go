package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"storyshare/internal/client/models"
	"storyshare/internal/common"
)

// HTTPClient is the concrete Client over net/http. The HTTP client is
// injectable so the cache worker transport can be layered underneath.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// envelope is the common part of every API response body.
type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type loginResponse struct {
	envelope
	LoginResult models.SessionAuth `json:"loginResult"`
}

type listResponse struct {
	envelope
	ListStory []models.Story `json:"listStory"`
}

type detailResponse struct {
	envelope
	Story models.Story `json:"story"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	var out envelope
	return c.postJSON(ctx, "/register", "", body, &out)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.SessionAuth, error) {
	body := map[string]string{"email": email, "password": password}
	var out loginResponse
	if err := c.postJSON(ctx, "/login", "", body, &out); err != nil {
		return models.SessionAuth{}, err
	}
	return out.LoginResult, nil
}

func (c *HTTPClient) ListStories(ctx context.Context, page, size int, withLocation bool, token string) ([]models.Story, error) {
	location := 0
	if withLocation {
		location = 1
	}
	url := fmt.Sprintf("%s/stories?page=%d&size=%d&location=%d", c.baseURL, page, size, location)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setAuth(req, token)

	var out listResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.ListStory, nil
}

func (c *HTTPClient) GetStory(ctx context.Context, id, token string) (*models.Story, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stories/"+id, nil)
	if err != nil {
		return nil, err
	}
	setAuth(req, token)

	var out detailResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Story, nil
}

func (c *HTTPClient) AddStory(ctx context.Context, draft models.StoryDraft, token string) error {
	return c.postMultipart(ctx, "/stories", draft, token)
}

func (c *HTTPClient) AddStoryGuest(ctx context.Context, draft models.StoryDraft) error {
	return c.postMultipart(ctx, "/stories/guest", draft, "")
}

func (c *HTTPClient) Subscribe(ctx context.Context, sub PushSubscription, token string) error {
	var out envelope
	return c.postJSON(ctx, "/notifications/subscribe", token, sub, &out)
}

func (c *HTTPClient) Unsubscribe(ctx context.Context, endpoint, token string) error {
	body := map[string]string{"endpoint": endpoint}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/notifications/unsubscribe", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)

	var out envelope
	return c.do(req, &out)
}

func (c *HTTPClient) TestNotification(ctx context.Context, token string) error {
	body := map[string]string{"message": "Test notification from storyshare"}
	var out envelope
	return c.postJSON(ctx, "/notifications/test", token, body, &out)
}

// Ping considers any HTTP response proof of connectivity; only a transport
// failure counts as unreachable. The no-store directive keeps a caching
// transport from answering the probe with a stale success.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stories?page=1&size=1", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-store")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)
	return c.do(req, out)
}

func (c *HTTPClient) postMultipart(ctx context.Context, path string, draft models.StoryDraft, token string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("description", draft.Description); err != nil {
		return err
	}
	part, err := w.CreatePart(photoPartHeader(draft.PhotoType))
	if err != nil {
		return err
	}
	if _, err := part.Write(draft.Photo); err != nil {
		return err
	}
	if draft.Lat != nil && draft.Lon != nil {
		if err := w.WriteField("lat", strconv.FormatFloat(*draft.Lat, 'f', -1, 64)); err != nil {
			return err
		}
		if err := w.WriteField("lon", strconv.FormatFloat(*draft.Lon, 'f', -1, 64)); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	setAuth(req, token)

	var out envelope
	return c.do(req, &out)
}

// do executes the request and decodes the envelope. A transport failure
// maps to common.ErrNetwork; error=true or a non-2xx status maps to
// *ServerError with the server's message.
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", common.ErrNetwork, err)
	}

	env := &envelope{}
	if len(data) > 0 {
		// The envelope decode is best-effort: some error statuses come
		// with non-JSON bodies.
		_ = json.Unmarshal(data, env)
	}

	if env.Error || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set(common.AuthHeaderName, "Bearer "+token)
	}
}

func photoPartHeader(mimeType string) textproto.MIMEHeader {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="photo"; filename="photo.jpg"`)
	h.Set("Content-Type", mimeType)
	return h
}
