package speaker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"
)

type encoderRequest struct {
	ID   string `json:"id"`
	Path string `json:"path,omitempty"`
}

type encoderResponse struct {
	ID        string    `json:"id"`
	OK        bool      `json:"ok"`
	Embedding []float64 `json:"embedding,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// EncoderWorker keeps one python process around with the resemblyzer model
// loaded, speaking JSON lines over stdin/stdout. One request in flight at a
// time, guarded by mu. A request that outlives its context kills the worker:
// the line protocol cannot resync once a response has been abandoned.
type EncoderWorker struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	dec    *json.Decoder
	closed bool
}

func StartEncoderWorker(pythonPath, scriptPath string) (*EncoderWorker, error) {
	cmd := exec.Command(pythonPath, "-u", scriptPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	w := &EncoderWorker{cmd: cmd, stdin: stdin, dec: json.NewDecoder(stdout)}

	// An empty request makes the worker load the model, so dependency
	// errors surface now instead of on the first upload.
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	if _, err := w.roundTrip(ctx, encoderRequest{ID: "warmup"}); err != nil {
		// Close waits the process out, which also joins the stderr
		// copier, so the buffer is complete before it is read.
		_ = w.Close()
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("encoder worker failed to start: %s", msg)
	}

	log.Printf("[speaker] encoder worker ready")
	return w, nil
}

func (w *EncoderWorker) Embed(ctx context.Context, path string) ([]float64, error) {
	resp, err := w.roundTrip(ctx, encoderRequest{
		ID:   fmt.Sprintf("req-%d", time.Now().UnixNano()),
		Path: path,
	})
	if err != nil {
		return nil, err
	}
	return resp.Embedding, nil
}

func (w *EncoderWorker) roundTrip(ctx context.Context, req encoderRequest) (*encoderResponse, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, fmt.Errorf("encoder worker closed")
	}

	b, _ := json.Marshal(req)
	b = append(b, '\n')
	if _, err := w.stdin.Write(b); err != nil {
		return nil, fmt.Errorf("encoder write: %w", err)
	}

	// Exactly one response per request (single-flight under mu). The decode
	// runs on its own goroutine so a wedged worker cannot hold the caller
	// past its deadline: killing the process unblocks the read.
	type decoded struct {
		resp encoderResponse
		err  error
	}
	done := make(chan decoded, 1)
	go func() {
		var resp encoderResponse
		err := w.dec.Decode(&resp)
		done <- decoded{resp: resp, err: err}
	}()

	var resp encoderResponse
	select {
	case d := <-done:
		if d.err != nil {
			return nil, fmt.Errorf("encoder read: %w", d.err)
		}
		resp = d.resp
	case <-ctx.Done():
		w.teardownLocked()
		return nil, fmt.Errorf("encoder read: %w", ctx.Err())
	}

	if resp.ID != req.ID {
		return nil, fmt.Errorf("encoder worker out-of-sync (got %q, expected %q)", resp.ID, req.ID)
	}
	if !resp.OK {
		msg := strings.TrimSpace(resp.Error)
		if msg == "" {
			msg = "unknown encoder error"
		}
		return nil, fmt.Errorf("encoder: %s", msg)
	}
	return &resp, nil
}

// teardownLocked kills and reaps the worker process. Callers hold mu.
func (w *EncoderWorker) teardownLocked() {
	if w.closed {
		return
	}
	w.closed = true

	if w.stdin != nil {
		_ = w.stdin.Close()
		w.stdin = nil
	}
	if w.cmd != nil {
		if w.cmd.Process != nil {
			_ = w.cmd.Process.Kill()
		}
		_ = w.cmd.Wait()
		w.cmd = nil
	}
}

func (w *EncoderWorker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.teardownLocked()
	return nil
}
