package zca

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// sweepHeader are the columns written by StreamResults.
var sweepHeader = []string{"case", "PR", "TIT_K", "beta", "pi_t", "NPR", "choked", "wc_kJkg", "wt_kJkg", "wnet_kJkg", "q_kJkg", "eta_th", "Vj_ms", "far", "err"}

// stationHeader are the columns written by WriteStations.
var stationHeader = []string{"station", "Tt_K", "Pt_kPa", "h_kJkg", "s_JkgK"}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

// StreamResults writes every sweep result received on the channel as one CSV record, until
// the channel is closed. Failed cases are written with their error and empty values. It
// returns the number of records written.
func StreamResults(w io.Writer, results <-chan SweepResult) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(sweepHeader); err != nil {
		return 0, err
	}
	n := 0
	for sr := range results {
		record := []string{strconv.Itoa(sr.Index), ftoa(sr.Config.PressureRatio), ftoa(sr.Config.TurbineInletTemperature)}
		if sr.Err != nil {
			for i := len(record); i < len(sweepHeader)-1; i++ {
				record = append(record, "")
			}
			record = append(record, sr.Err.Error())
		} else {
			r := sr.Result
			record = append(record,
				ftoa(r.CoolingFraction), ftoa(r.TurbinePressureRatio), ftoa(r.NozzlePressureRatio),
				strconv.FormatBool(r.Choked),
				ftoa(r.CompressorWork/1e3), ftoa(r.TurbineWork/1e3), ftoa(r.NetWork/1e3), ftoa(r.HeatAddition/1e3),
				ftoa(r.ThermalEfficiency), ftoa(r.IdealJetVelocity), ftoa(r.FuelAirRatio), "")
		}
		if err := cw.Write(record); err != nil {
			// Drain so that the producer is never blocked.
			for range results {
			}
			return n, err
		}
		n++
		cw.Flush()
	}
	cw.Flush()
	return n, cw.Error()
}

// WriteStations writes the T-s and p-h data of a solved cycle as CSV.
func WriteStations(w io.Writer, r CycleResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stationHeader); err != nil {
		return err
	}
	for _, s := range r.Stations() {
		if err := cw.Write([]string{s.Name, ftoa(s.Tt), ftoa(s.Pt / 1e3), ftoa(s.Enthalpy / 1e3), ftoa(s.Entropy)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportConfig configures the files written to the output directory.
type ExportConfig struct {
	Filename  string
	Timestamp bool // append the creation time to the file name
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return c.Filename == ""
}

// createCSVFile returns a file which requires a defer close statement!
func createCSVFile(kind string, conf ExportConfig) (*os.File, error) {
	dir, _, err := Config()
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s-%s.csv", kind, conf.Filename)
	if conf.Timestamp {
		t := time.Now()
		name = fmt.Sprintf("%s-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", kind, conf.Filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	// Header
	if _, err := fmt.Fprintf(f, "# Creation date (UTC): %s\n", time.Now().UTC()); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// ExportSweep streams the sweep results to `sweep-<filename>.csv` in the output directory
// and returns the file path.
func ExportSweep(conf ExportConfig, results <-chan SweepResult) (string, error) {
	f, err := createCSVFile("sweep", conf)
	if err != nil {
		for range results {
		}
		return "", err
	}
	defer f.Close()
	if _, err := StreamResults(f, results); err != nil {
		return f.Name(), err
	}
	return f.Name(), nil
}

// ExportStations writes the stations of a solved cycle to `stations-<filename>.csv` in the
// output directory and returns the file path.
func ExportStations(conf ExportConfig, r CycleResult) (string, error) {
	f, err := createCSVFile("stations", conf)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return f.Name(), WriteStations(f, r)
}
