package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches an account's owned games and playtimes from the Steam Web
// API. The recommender only consumes the id/playtime pairs; a fetch failure
// degrades the session rather than failing it, so errors here are reported
// with a dedicated type the service can recognize.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    baseURL,
	}
}

type UnavailableError struct {
	Msg string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func IsUnavailable(err error) bool {
	var target *UnavailableError
	return errors.As(err, &target)
}

type ownedGamesPayload struct {
	Response struct {
		GameCount int `json:"game_count"`
		Games     []struct {
			AppID           int64 `json:"appid"`
			PlaytimeForever int   `json:"playtime_forever"`
		} `json:"games"`
	} `json:"response"`
}

// OwnedGames returns the account's library as a mapping from game id to
// total playtime in minutes. An empty account id is treated as an anonymous
// session with an empty library.
func (c *Client) OwnedGames(ctx context.Context, steamID string) (map[string]int, error) {
	if steamID == "" {
		return map[string]int{}, nil
	}

	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("steamid", steamID)
	query.Set("format", "json")
	endpoint := c.baseURL + "/IPlayerService/GetOwnedGames/v0001/?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UnavailableError{Msg: "build owned-games request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnavailableError{Msg: "fetch owned games", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UnavailableError{
			Msg: fmt.Sprintf("owned-games request returned status %d", resp.StatusCode),
		}
	}

	var payload ownedGamesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UnavailableError{Msg: "decode owned-games response", Err: err}
	}

	played := make(map[string]int, len(payload.Response.Games))
	for _, game := range payload.Response.Games {
		played[strconv.FormatInt(game.AppID, 10)] = game.PlaytimeForever
	}
	return played, nil
}
