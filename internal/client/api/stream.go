package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"zorgkaart/internal/common"
	"zorgkaart/internal/server/store"
)

// Stream opens the snapshot stream and sends every received snapshot on the
// returned channel. The first snapshot arrives immediately; the channel is
// closed when the connection drops or ctx is cancelled. Callers that want a
// resilient stream reconnect around this.
func (c *Client) Stream(ctx context.Context) (<-chan store.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/providers/stream", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// no client timeout: the stream is long-lived, ctx bounds its life
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, common.ErrorUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("server: http %d", resp.StatusCode)
	}

	out := make(chan store.Snapshot)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		readEvents(ctx, resp.Body, out)
	}()
	return out, nil
}

// readEvents parses the SSE wire format: "event:"/"data:" lines terminated
// by a blank line. Only snapshot events are forwarded; multi-line data is
// joined per the SSE spec.
func readEvents(ctx context.Context, body io.Reader, out chan<- store.Snapshot) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var event string
	var data []string

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if event == "snapshot" && len(data) > 0 {
				var snap store.Snapshot
				if err := json.Unmarshal([]byte(strings.Join(data, "\n")), &snap); err == nil {
					select {
					case out <- snap:
					case <-ctx.Done():
						return
					}
				}
			}
			event, data = "", nil
			continue
		}

		if v, ok := strings.CutPrefix(line, "event:"); ok {
			event = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, "data:"); ok {
			data = append(data, strings.TrimPrefix(v, " "))
		}
	}
}
