package services

import (
	"fmt"
	"io"
	"text/tabwriter"

	"service-launcher/internal/config"
	"service-launcher/internal/models"
)

// ProbeServices reports whether each service port currently accepts connections.
func ProbeServices(prober Prober, svcs []config.ServiceConfig) []models.ServiceStatus {
	statuses := make([]models.ServiceStatus, 0, len(svcs))
	for _, svc := range svcs {
		statuses = append(statuses, ProbeService(prober, svc))
	}
	return statuses
}

func ProbeService(prober Prober, svc config.ServiceConfig) models.ServiceStatus {
	return models.ServiceStatus{
		Name: svc.Name,
		Port: svc.Port,
		Path: svc.Path,
		URL:  svc.DocsURL(),
		Up:   prober.Probe(svc.Port),
	}
}

/**
 * Print service status table
 * @param {io.Writer} w - Output
 * @param {[]models.ServiceStatus} statuses - Probe results
 */
func PrintStatus(w io.Writer, statuses []models.ServiceStatus) error {
	if len(statuses) == 0 {
		_, err := fmt.Fprintln(w, "No services configured")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPORT\tSTATUS\tURL\tPATH")
	for _, st := range statuses {
		status := "stopped"
		if st.Up {
			status = "running"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", st.Name, st.Port, status, st.URL, st.Path)
	}
	return tw.Flush()
}
