package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/thermosim/internal/thermo"
)

type TraceData struct {
	Session      string             `json:"session"`
	Controller   string             `json:"controller,omitempty"`
	Step         float64            `json:"step"`
	Steps        int                `json:"steps"`
	Times        []float64          `json:"times"`
	Temperatures []float64          `json:"temperatures"`
	Volumes      []float64          `json:"volumes"`
	BubbleCounts []int              `json:"bubbles"`
	SteamCounts  []int              `json:"steam"`
	Regimes      []string           `json:"regimes"`
	Metrics      map[string]float64 `json:"metrics"`
}

// TraceJSON writes a headless run as indented JSON.
func TraceJSON(w io.Writer, session, controller string, step float64, result *thermo.Result) error {
	data := TraceData{
		Session:      session,
		Controller:   controller,
		Step:         step,
		Steps:        result.Steps,
		Times:        result.Times,
		Temperatures: result.Temperatures,
		Volumes:      result.Volumes,
		BubbleCounts: result.BubbleCounts,
		SteamCounts:  result.SteamCounts,
		Regimes:      make([]string, len(result.Regimes)),
		Metrics:      result.Metrics,
	}

	for i, r := range result.Regimes {
		data.Regimes[i] = r.String()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// TraceCSV writes one row per recorded tick.
func TraceCSV(out io.Writer, result *thermo.Result) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"time", "temperature", "volume", "bubbles", "steam", "regime"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Temperatures[i], 'f', 6, 64),
			strconv.FormatFloat(result.Volumes[i], 'f', 6, 64),
			strconv.Itoa(result.BubbleCounts[i]),
			strconv.Itoa(result.SteamCounts[i]),
			result.Regimes[i].String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
