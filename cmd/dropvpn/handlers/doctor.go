package handlers

import (
	"fmt"
	"strings"

	"github.com/imamik/dropvpn/internal/config"
	"github.com/imamik/dropvpn/internal/provisioning/access"
	"github.com/imamik/dropvpn/internal/util/keygen"
)

// DoctorOptions holds the doctor flags.
type DoctorOptions struct {
	ConfigPath string
	Provider   string
}

type checkStatus int

const (
	statusOK checkStatus = iota
	statusWarn
	statusFail
)

// checkRow is one line of doctor output.
type checkRow struct {
	Name   string
	Status checkStatus
	Detail string
}

// Doctor checks local tools, configuration, credentials and files, prints a
// report and fails when a deploy could not run.
func Doctor(opts DoctorOptions) error {
	rows := toolRows()

	cfg, err := loadConfig(opts.ConfigPath, overrides{Provider: opts.Provider})
	if err != nil {
		rows = append(rows, checkRow{Name: "configuration", Status: statusFail, Detail: err.Error()})
	} else {
		rows = append(rows, checkRow{
			Name:   "configuration",
			Status: statusOK,
			Detail: fmt.Sprintf("%s %s %s %s", cfg.Provider, cfg.Region, cfg.Image, cfg.Size),
		})
		rows = append(rows, configRows(cfg)...)
	}

	printDoctor(rows)

	failed := 0
	for _, r := range rows {
		if r.Status == statusFail {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("doctor found %d problem(s)", failed)
	}
	return nil
}

func toolRows() []checkRow {
	results := checkAllPrereqs()
	rows := make([]checkRow, 0, len(results.Results))
	for _, r := range results.Results {
		row := checkRow{Name: r.Tool.Name}
		switch {
		case r.Found:
			row.Status = statusOK
			row.Detail = r.Path
			if r.Version != "" {
				row.Detail = r.Version
			}
		case r.Tool.Required:
			row.Status = statusFail
			row.Detail = "not found, see " + r.Tool.InstallURL
		default:
			row.Status = statusWarn
			row.Detail = "not found (optional): " + r.Tool.Description
		}
		rows = append(rows, row)
	}
	return rows
}

func configRows(cfg *config.Config) []checkRow {
	var rows []checkRow

	if _, err := lookupToken(cfg.Provider); err != nil {
		rows = append(rows, checkRow{Name: "api token", Status: statusFail, Detail: err.Error()})
	} else {
		rows = append(rows, checkRow{
			Name:   "api token",
			Status: statusOK,
			Detail: "found in " + strings.Join(config.TokenEnvVars(cfg.Provider), " or "),
		})
	}

	if fileExists(cfg.Playbook) {
		rows = append(rows, checkRow{Name: "playbook", Status: statusOK, Detail: cfg.Playbook})
	} else {
		rows = append(rows, checkRow{Name: "playbook", Status: statusFail, Detail: cfg.Playbook + " does not exist"})
	}

	keyPath := access.PrivateKeyPath(cfg.KeyDir)
	if keygen.Exists(keyPath) {
		rows = append(rows, checkRow{Name: "ssh key", Status: statusOK, Detail: keyPath})
	} else {
		rows = append(rows, checkRow{Name: "ssh key", Status: statusWarn, Detail: keyPath + " will be generated on first deploy"})
	}

	return rows
}

func printDoctor(rows []checkRow) {
	fmt.Fprintln(stdout, render(titleStyle, "dropvpn doctor"))
	fmt.Fprintln(stdout)
	for _, r := range rows {
		fmt.Fprintf(stdout, "  %s %-16s %s\n", statusMark(r.Status), r.Name, render(dimStyle, r.Detail))
	}
	fmt.Fprintln(stdout)
}

func statusMark(s checkStatus) string {
	switch s {
	case statusOK:
		return render(readyStyle, checkMark)
	case statusWarn:
		return render(warningStyle, warnMark)
	default:
		return render(failedStyle, crossMark)
	}
}
