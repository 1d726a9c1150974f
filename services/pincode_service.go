package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidPincode is returned for anything that is not six digits
var ErrInvalidPincode = errors.New("pincode must be 6 digits")

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// PincodeData is the city/state a postal code resolves to
type PincodeData struct {
	Pincode  string `json:"pincode"`
	City     string `json:"city"`
	State    string `json:"state"`
	District string `json:"district"`
}

// knownPincodes answers the most common lookups without a network call
var knownPincodes = map[string]PincodeData{
	"110001": {Pincode: "110001", City: "New Delhi", State: "Delhi", District: "Central Delhi"},
	"400001": {Pincode: "400001", City: "Mumbai", State: "Maharashtra", District: "Mumbai"},
	"560001": {Pincode: "560001", City: "Bangalore", State: "Karnataka", District: "Bangalore"},
	"600001": {Pincode: "600001", City: "Chennai", State: "Tamil Nadu", District: "Chennai"},
	"700001": {Pincode: "700001", City: "Kolkata", State: "West Bengal", District: "Kolkata"},
	"500001": {Pincode: "500001", City: "Hyderabad", State: "Telangana", District: "Hyderabad"},
	"411001": {Pincode: "411001", City: "Pune", State: "Maharashtra", District: "Pune"},
	"380001": {Pincode: "380001", City: "Ahmedabad", State: "Gujarat", District: "Ahmedabad"},
	"302001": {Pincode: "302001", City: "Jaipur", State: "Rajasthan", District: "Jaipur"},
	"226001": {Pincode: "226001", City: "Lucknow", State: "Uttar Pradesh", District: "Lucknow"},
	"160001": {Pincode: "160001", City: "Chandigarh", State: "Chandigarh", District: "Chandigarh"},
	"201301": {Pincode: "201301", City: "Noida", State: "Uttar Pradesh", District: "Gautam Buddha Nagar"},
	"122001": {Pincode: "122001", City: "Gurgaon", State: "Haryana", District: "Gurgaon"},
	"560076": {Pincode: "560076", City: "Bangalore", State: "Karnataka", District: "Bangalore"},
	"400070": {Pincode: "400070", City: "Mumbai", State: "Maharashtra", District: "Mumbai Suburban"},
}

// postOfficeResponse is one element of the India Post API's top-level array
type postOfficeResponse struct {
	Status     string `json:"Status"`
	PostOffice []struct {
		District string `json:"District"`
		Block    string `json:"Block"`
		State    string `json:"State"`
	} `json:"PostOffice"`
}

// PincodeService resolves postal codes from the static table, then the India Post API
type PincodeService struct {
	baseURL    string
	httpClient *http.Client
}

// NewPincodeService creates a lookup service against baseURL (no trailing slash)
func NewPincodeService(baseURL string) *PincodeService {
	return &PincodeService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// CleanPincode strips all whitespace from a user-entered pincode
func CleanPincode(pincode string) string {
	return strings.Join(strings.Fields(pincode), "")
}

// Lookup returns nil data with a nil error when the code is well-formed but unknown.
// A non-nil error other than ErrInvalidPincode means the remote lookup failed.
func (s *PincodeService) Lookup(ctx context.Context, pincode string) (*PincodeData, error) {
	clean := CleanPincode(pincode)
	if !pincodePattern.MatchString(clean) {
		return nil, ErrInvalidPincode
	}

	if data, ok := knownPincodes[clean]; ok {
		return &data, nil
	}

	return s.fetch(ctx, clean)
}

func (s *PincodeService) fetch(ctx context.Context, pincode string) (*PincodeData, error) {
	url := fmt.Sprintf("%s/pincode/%s", s.baseURL, pincode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call pincode endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pincode endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload []postOfficeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode pincode response: %w", err)
	}

	if len(payload) == 0 || payload[0].Status != "Success" || len(payload[0].PostOffice) == 0 {
		return nil, nil
	}

	office := payload[0].PostOffice[0]
	city := office.District
	if city == "" {
		city = office.Block
	}
	return &PincodeData{
		Pincode:  pincode,
		City:     city,
		State:    office.State,
		District: office.District,
	}, nil
}

var pincodeServiceInstance *PincodeService

// GetPincodeService returns the configured pincode service instance
func GetPincodeService() *PincodeService {
	return pincodeServiceInstance
}

// SetPincodeService sets the pincode service instance
func SetPincodeService(service *PincodeService) {
	pincodeServiceInstance = service
}
