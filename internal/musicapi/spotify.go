package musicapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	spotifyAccountsURL = "https://accounts.spotify.com/api/token"
	spotifyAPIURL      = "https://api.spotify.com/v1"
)

// SpotifyClient implements Client against the Spotify Web API using the
// client-credentials flow.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client

	// Overridable in tests.
	tokenURL string
	apiURL   string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyClient creates a Spotify catalog client.
func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	return &SpotifyClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokenURL: spotifyAccountsURL,
		apiURL:   spotifyAPIURL,
	}
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type spotifySearchResponse struct {
	Albums *spotifyAlbumsPage `json:"albums,omitempty"`
}

type spotifyAlbumsPage struct {
	Items []spotifyAlbum `json:"items"`
}

type spotifyAlbum struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Artists      []spotifySimpleArtist `json:"artists"`
	ReleaseDate  string                `json:"release_date"`
	TotalTracks  int                   `json:"total_tracks"`
	Images       []spotifyImage        `json:"images"`
	ExternalURLs spotifyExternalURLs   `json:"external_urls"`
	Tracks       *spotifyTracksPage    `json:"tracks,omitempty"`
}

type spotifyTracksPage struct {
	Items []spotifyTrack `json:"items"`
}

type spotifyTrack struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Artists     []spotifySimpleArtist `json:"artists"`
	DurationMS  int                   `json:"duration_ms"`
	TrackNumber int                   `json:"track_number"`
	DiscNumber  int                   `json:"disc_number"`
	PreviewURL  string                `json:"preview_url,omitempty"`
}

type spotifySimpleArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type spotifyExternalURLs struct {
	Spotify string `json:"spotify"`
}

// authenticate obtains or refreshes the client-credentials access token.
func (c *SpotifyClient) authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	authString := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+authString)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("spotify auth failed: %s - %s", resp.Status, string(body))
	}

	var tokenResp spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode auth response: %w", err)
	}

	c.accessToken = tokenResp.AccessToken
	// Renew a minute early so in-flight requests never carry a stale token.
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}

// doRequest performs an authenticated GET against the Spotify API.
func (c *SpotifyClient) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	token, err := c.authenticate(ctx)
	if err != nil {
		return err
	}

	apiURL := c.apiURL + "/" + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("spotify api error: %s - %s", resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// SearchAlbums searches Spotify for albums matching the query.
func (c *SpotifyClient) SearchAlbums(ctx context.Context, query string, limit int) ([]Album, error) {
	params := url.Values{
		"q":     []string{query},
		"type":  []string{"album"},
		"limit": []string{strconv.Itoa(limit)},
	}

	var result spotifySearchResponse
	if err := c.doRequest(ctx, "search", params, &result); err != nil {
		return nil, err
	}

	if result.Albums == nil {
		return []Album{}, nil
	}

	albums := make([]Album, 0, len(result.Albums.Items))
	for _, sa := range result.Albums.Items {
		albums = append(albums, convertAlbum(sa))
	}

	return albums, nil
}

// GetAlbum retrieves full album details including its tracks.
func (c *SpotifyClient) GetAlbum(ctx context.Context, albumID string) (*Album, error) {
	var sa spotifyAlbum
	if err := c.doRequest(ctx, "albums/"+url.PathEscape(albumID), nil, &sa); err != nil {
		return nil, err
	}

	album := convertAlbum(sa)
	if sa.Tracks != nil {
		album.Tracks = make([]Track, 0, len(sa.Tracks.Items))
		for _, st := range sa.Tracks.Items {
			album.Tracks = append(album.Tracks, convertTrack(st))
		}
	}

	return &album, nil
}

func convertAlbum(sa spotifyAlbum) Album {
	artistName := ""
	artistID := ""
	if len(sa.Artists) > 0 {
		artistName = sa.Artists[0].Name
		artistID = sa.Artists[0].ID
	}

	imageURL := ""
	if len(sa.Images) > 0 {
		imageURL = sa.Images[0].URL
	}

	return Album{
		ExternalID:  sa.ID,
		Name:        sa.Name,
		Artist:      artistName,
		ArtistID:    artistID,
		ReleaseDate: sa.ReleaseDate,
		TrackCount:  sa.TotalTracks,
		ImageURL:    imageURL,
		ExternalURL: sa.ExternalURLs.Spotify,
	}
}

func convertTrack(st spotifyTrack) Track {
	artistName := ""
	if len(st.Artists) > 0 {
		artistName = st.Artists[0].Name
	}

	return Track{
		ExternalID:  st.ID,
		Name:        st.Name,
		Artist:      artistName,
		Duration:    st.DurationMS / 1000,
		TrackNumber: st.TrackNumber,
		DiscNumber:  st.DiscNumber,
		PreviewURL:  st.PreviewURL,
	}
}
