package stac

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/landsight/landsight-index-poc/internal/properties"
	"github.com/paulmach/orb"
	"golang.org/x/oauth2/clientcredentials"
)

const defaultSearchLimit = 100

// Client talks to a STAC API's item-search endpoint.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the catalog configured through the environment.
// When STAC_CLIENT_ID is set the client authenticates with OAuth2 client
// credentials, the scheme Copernicus Dataspace uses; public catalogs such as
// Earth Search need no auth.
func NewClient() *Client {
	httpClient := http.DefaultClient

	clientID := properties.StacClientID()
	if clientID != "" {
		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: properties.StacClientSecret(),
			TokenURL:     properties.StacTokenURL(),
		}
		httpClient = config.Client(context.Background())
	}

	return &Client{
		BaseURL:    properties.StacAPIURL(),
		httpClient: httpClient,
	}
}

type searchResponse struct {
	Type     string `json:"type"`
	Features []Item `json:"features"`
}

// SearchItems queries the catalog for scenes of the given collection that
// intersect the AOI's bounding box within [startDate, endDate], keeping only
// scenes at or below maxCloudCover percent. Results come back in the catalog's
// order. Single page, capped at the search limit.
func (c *Client) SearchItems(collection string, aoi orb.Polygon, startDate, endDate time.Time, maxCloudCover float64) ([]Item, error) {
	bound := aoi.Bound()

	requestPayload := map[string]interface{}{
		"collections": []string{collection},
		"bbox":        []float64{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]},
		"datetime":    fmt.Sprintf("%s/%s", startDate.Format(time.RFC3339), endDate.Format(time.RFC3339)),
		"limit":       defaultSearchLimit,
		"query": map[string]interface{}{
			"eo:cloud_cover": map[string]float64{
				"lte": maxCloudCover,
			},
		},
	}

	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search payload: %v", err)
	}

	response, err := c.httpClient.Post(c.BaseURL+"/search", "application/json", bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to query STAC search endpoint: %v", err)
	}
	defer response.Body.Close()

	responseContent, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response body: %v", err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("STAC search returned status %d: %s", response.StatusCode, string(responseContent))
	}

	var result searchResponse
	if err := json.Unmarshal(responseContent, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return result.Features, nil
}
