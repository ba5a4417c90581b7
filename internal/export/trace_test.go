package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/thermosim/internal/thermo"
)

func sampleResult() *thermo.Result {
	return &thermo.Result{
		Times:        []float64{0, 0.5},
		Temperatures: []float64{99.5, 100.2},
		Volumes:      []float64{1.016, 1.017},
		BubbleCounts: []int{12, 14},
		SteamCounts:  []int{0, 1},
		Regimes:      []thermo.Regime{thermo.Normal, thermo.Boiling},
		Metrics:      map[string]float64{"peak_temperature": 100.2},
		Steps:        1,
	}
}

func TestTraceCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := TraceCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,temperature,volume,bubbles,steam,regime" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "0.500000,100.200000,1.017000,14,1,boiling" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestTraceJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := TraceJSON(&buf, "boil", "", 1.0/60, sampleResult()); err != nil {
		t.Fatalf("json: %v", err)
	}

	var data TraceData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Session != "boil" || data.Steps != 1 {
		t.Errorf("unexpected header fields %+v", data)
	}
	if len(data.Regimes) != 2 || data.Regimes[1] != "boiling" {
		t.Errorf("regimes should be named, got %v", data.Regimes)
	}
	if strings.Contains(buf.String(), `"controller"`) {
		t.Error("empty controller should be omitted")
	}
}
