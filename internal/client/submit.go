// Package client builds and sends order-batch submissions: one multipart
// request carrying the customer identity plus, per line, bracketed-index
// metadata fields and the rendered image part under the same index.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fotoflesz/printshop-backend/internal/order"
	"github.com/fotoflesz/printshop-backend/internal/platform/logger"
	"github.com/fotoflesz/printshop-backend/internal/render"
)

var ErrArtifactUnresolved = errors.New("order line has no resolvable artifact")

// Response mirrors the server's JSON envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Submitter struct {
	log      *logger.Logger
	endpoint string
	store    *render.Store
	http     *http.Client
}

func NewSubmitter(log *logger.Logger, endpoint string, store *render.Store) *Submitter {
	return &Submitter{
		log:      log.With("component", "Submitter"),
		endpoint: endpoint,
		store:    store,
		http:     &http.Client{Timeout: 2 * time.Minute},
	}
}

// Submit sends the whole queue as one batch. The queue is frozen for the
// duration: success clears it in full, any failure leaves it fully intact for
// retry. Every artifact must resolve to bytes before anything is sent.
func (s *Submitter) Submit(ctx context.Context, q *order.Queue, customer order.Customer) (Response, error) {
	var resp Response
	if err := customer.Validate(); err != nil {
		return resp, err
	}
	if err := q.BeginSubmission(); err != nil {
		return resp, err
	}
	success := false
	defer func() { q.EndSubmission(success) }()

	snapshot := q.Snapshot()
	blobs, err := s.resolveArtifacts(ctx, snapshot)
	if err != nil {
		return resp, err
	}

	body, contentType, err := buildBody(customer, snapshot, blobs)
	if err != nil {
		return resp, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return resp, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	httpResp, err := s.http.Do(req)
	if err != nil {
		return resp, fmt.Errorf("send batch: %w", err)
	}
	defer httpResp.Body.Close()

	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("decode response: %w", err)
	}
	if httpResp.StatusCode >= 300 || !resp.Success {
		return resp, fmt.Errorf("server rejected batch (status %d): %s", httpResp.StatusCode, resp.Error)
	}

	success = true
	s.log.Info("batch submitted", "lines", len(snapshot), "message", resp.Message)
	return resp, nil
}

// resolveArtifacts gathers the rendered bytes for every line up front. A
// single unresolvable handle aborts the submission; a batch with holes is a
// client fault and must never go on the wire.
func (s *Submitter) resolveArtifacts(ctx context.Context, lines []order.Line) ([][]byte, error) {
	blobs := make([][]byte, len(lines))
	g, _ := errgroup.WithContext(ctx)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			data, ok := s.store.Get(line.ArtifactID)
			if !ok {
				return fmt.Errorf("%w: index %d (line id %d)", ErrArtifactUnresolved, i, line.ID)
			}
			blobs[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blobs, nil
}

func buildBody(customer order.Customer, lines []order.Line, blobs [][]byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	_ = w.WriteField("name", customer.Name)
	_ = w.WriteField("surname", customer.Surname)
	_ = w.WriteField("address", customer.Address)
	_ = w.WriteField("phone", customer.Phone)

	for i, line := range lines {
		prefix := fmt.Sprintf("orders[%d]", i)
		_ = w.WriteField(prefix+"[format]", line.Format)
		_ = w.WriteField(prefix+"[paper]", line.Paper)
		_ = w.WriteField(prefix+"[colorMode]", line.ColorMode)
		_ = w.WriteField(prefix+"[quantity]", strconv.Itoa(line.Quantity))
		_ = w.WriteField(prefix+"[price]", fmt.Sprintf("%.2f", line.Price))

		part, err := w.CreateFormFile(prefix+"[image]",
			fmt.Sprintf("%s_%s_%s_%d.jpg", line.Format, line.Paper, line.ColorMode, i+1))
		if err != nil {
			return nil, "", fmt.Errorf("create image part %d: %w", i, err)
		}
		if _, err := part.Write(blobs[i]); err != nil {
			return nil, "", fmt.Errorf("write image part %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
