package speaker

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeWorkerScript = `import json, sys
for line in sys.stdin:
    req = json.loads(line)
    resp = {"id": req.get("id", ""), "ok": True}
    if req.get("path"):
        resp["embedding"] = [0.1, 0.2, 0.3]
    sys.stdout.write(json.dumps(resp) + "\n")
    sys.stdout.flush()
`

const brokenWorkerScript = `import sys
sys.stderr.write("No module named resemblyzer\n")
sys.exit(1)
`

const failingWorkerScript = `import json, sys
for line in sys.stdin:
    req = json.loads(line)
    if req.get("path"):
        resp = {"id": req.get("id", ""), "ok": False, "error": "audio too short"}
    else:
        resp = {"id": req.get("id", ""), "ok": True}
    sys.stdout.write(json.dumps(resp) + "\n")
    sys.stdout.flush()
`

const stalledWorkerScript = `import json, sys, time
for line in sys.stdin:
    req = json.loads(line)
    if req.get("path"):
        time.sleep(60)
    resp = {"id": req.get("id", ""), "ok": True}
    sys.stdout.write(json.dumps(resp) + "\n")
    sys.stdout.flush()
`

func startTestWorker(t *testing.T, script string) *EncoderWorker {
	t.Helper()

	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not installed")
	}

	path := filepath.Join(t.TempDir(), "worker.py")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	w, err := StartEncoderWorker(python, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestEncoderWorker_Embed(t *testing.T) {
	w := startTestWorker(t, fakeWorkerScript)

	emb, err := w.Embed(context.Background(), "/tmp/sample.wav")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, emb)
}

func TestEncoderWorker_EmbedHonorsContext(t *testing.T) {
	w := startTestWorker(t, stalledWorkerScript)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := w.Embed(ctx, "/tmp/sample.wav")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)

	// the stream cannot resync after an abandoned response
	_, err = w.Embed(context.Background(), "/tmp/sample.wav")
	assert.EqualError(t, err, "encoder worker closed")
}

func TestEncoderWorker_EmbedErrorSurfaced(t *testing.T) {
	w := startTestWorker(t, failingWorkerScript)

	_, err := w.Embed(context.Background(), "/tmp/sample.wav")
	assert.EqualError(t, err, "encoder: audio too short")
}

func TestEncoderWorker_StartFailureSurfacesStderr(t *testing.T) {
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not installed")
	}

	path := filepath.Join(t.TempDir(), "worker.py")
	require.NoError(t, os.WriteFile(path, []byte(brokenWorkerScript), 0644))

	_, err = StartEncoderWorker(python, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoder worker failed to start")
	assert.Contains(t, err.Error(), "No module named resemblyzer")
}

func TestEncoderWorker_Close(t *testing.T) {
	w := startTestWorker(t, fakeWorkerScript)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, err := w.Embed(context.Background(), "/tmp/sample.wav")
	assert.EqualError(t, err, "encoder worker closed")
}
