package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/vendors/internal/core"
	"github.com/JonMunkholm/vendors/internal/logging"
	"github.com/JonMunkholm/vendors/internal/web/templates"
)

// maxBodySize caps POST bodies; a vendor is four short fields.
const maxBodySize = 16 * 1024

// VendorResponse is the JSON form of a vendor.
type VendorResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Region    string `json:"region"`
	Age       int    `json:"age"`
}

// VendorListResponse is returned by GET /api/vendors.
type VendorListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
	Count   int              `json:"count"`
}

// RegionAverageResponse is one region of the average age report.
type RegionAverageResponse struct {
	Region     string  `json:"region"`
	AverageAge float64 `json:"average_age"`
	Count      int     `json:"count"`
}

// AverageAgeResponse is returned by GET /api/reports/average-age.
type AverageAgeResponse struct {
	Regions []RegionAverageResponse `json:"regions"`
}

// CreateVendorRequest is the body of POST /api/vendors.
// BirthDate is parsed with DatePattern, or the configured input pattern
// when DatePattern is empty.
type CreateVendorRequest struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	Region      string `json:"region"`
	DatePattern string `json:"date_pattern,omitempty"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleListVendors returns the general report as JSON.
func (s *Server) handleListVendors(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.GeneralReport(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	now := s.service.Now()
	vendors := report.Vendors()
	resp := VendorListResponse{
		Vendors: make([]VendorResponse, len(vendors)),
		Count:   len(vendors),
	}
	for i, v := range vendors {
		resp.Vendors[i] = VendorResponse{
			ID:        v.ID,
			Name:      v.Name,
			BirthDate: v.BirthDate.String(),
			Region:    v.Region,
			Age:       v.AgeAt(now),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleAverageAge returns the average age per region as JSON.
func (s *Server) handleAverageAge(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.AverageAgeByRegion(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries := report.Entries()
	resp := AverageAgeResponse{Regions: make([]RegionAverageResponse, len(entries))}
	for i, e := range entries {
		resp.Regions[i] = RegionAverageResponse{
			Region:     e.Region,
			AverageAge: e.AverageAge,
			Count:      e.Count,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCreateVendor validates and appends a new vendor.
// The new vendor is not visible in the reports until the process restarts.
func (s *Server) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorStatus(w, r, fmt.Errorf("decode request body: %w", err), http.StatusBadRequest)
		return
	}

	pattern := s.inputPattern
	if req.DatePattern != "" {
		pattern = core.DatePattern(strings.ToLower(req.DatePattern))
	}
	if !pattern.Valid() {
		respondErrorStatus(w, r, fmt.Errorf("%w: unknown date pattern %q", core.ErrUnrecognizedDateFormat, req.DatePattern), http.StatusBadRequest)
		return
	}

	vendor, err := s.service.CaptureVendor(req.ID, req.Name, req.BirthDate, req.Region, pattern)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.service.Save(r.Context(), vendor); err != nil {
		respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "vendor_id", vendor.ID, "region", vendor.Region).Info("vendor saved")
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// handleVendorsPage renders the general report as HTML.
func (s *Server) handleVendorsPage(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.GeneralReport(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	now := s.service.Now()
	vendors := report.Vendors()
	rows := make([]templates.VendorRow, len(vendors))
	for i, v := range vendors {
		rows[i] = templates.VendorRow{
			ID:        v.ID,
			Name:      v.Name,
			BirthDate: v.BirthDate.String(),
			Region:    v.Region,
			Age:       v.AgeAt(now),
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.VendorsPage(rows).Render(r.Context(), w)
}

// handleAverageAgePage renders the average age report as HTML.
func (s *Server) handleAverageAgePage(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.AverageAgeByRegion(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	entries := report.Entries()
	rows := make([]templates.RegionRow, len(entries))
	for i, e := range entries {
		rows[i] = templates.RegionRow{Region: e.Region, AverageAge: e.AverageAge, Count: e.Count}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.AverageAgePage(rows).Render(r.Context(), w)
}
