// Package render prints reports and tables for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/mawj/internal/cities"
	"github.com/lox/mawj/internal/forecast"
	"github.com/lox/mawj/internal/report"
	"github.com/lox/mawj/internal/store"
)

// Report prints a full conditions report.
func Report(w io.Writer, r *report.Report) error {
	var b strings.Builder

	place := fmt.Sprintf("%.4f, %.4f", r.Latitude, r.Longitude)
	if r.City != nil {
		place = r.City.String()
	}
	b.WriteString(titleStyle.Render("MAWJ · " + place))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(r.GeneratedAt.Format("02/01/2006 15:04")))
	b.WriteString("\n\n")

	banner := fmt.Sprintf("%s %s\n%s", r.Verdict.Icon, tierStyle(r.Verdict).Render(r.Verdict.Message), r.Verdict.Details)
	b.WriteString(bannerStyle.BorderForeground(lipgloss.Color(r.Verdict.Color)).Render(banner))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s (%d/100)\n", r.Home.Icon, r.Home.Title, r.Home.Score)

	section(&b, "Conditions actuelles")
	c := r.Current
	row(&b, "Vagues", fmt.Sprintf("%.1f m, %s, période %.0f s", c.WaveHeight, r.Compass.Wave, c.WavePeriod))
	row(&b, "Vent", fmt.Sprintf("%.0f km/h %s, rafales %.0f km/h", c.WindSpeed, r.Compass.Wind, c.WindGusts))
	row(&b, "Mer", fmt.Sprintf("%.1f°C", c.SeaTemp))
	row(&b, "Air", fmt.Sprintf("%.1f°C, nuages %.0f%%", c.AirTemp, c.CloudCover))
	row(&b, "Courant", fmt.Sprintf("%.1f km/h %s", c.CurrentSpeed, r.Compass.Current))
	row(&b, "Lune", fmt.Sprintf("%s (%d%%)", r.Moon.Name, r.Moon.Illumination))

	section(&b, "Conseils")
	for _, tip := range r.Advice {
		fmt.Fprintf(&b, "  %s\n", tip)
	}

	writeSun(&b, r.Sun)
	writeTides(&b, r.Tides)
	writeWindows(&b, r.Windows)

	section(&b, "Évolution 24h")
	for _, p := range r.Evolution {
		fmt.Fprintf(&b, "  %-10s %5.1f m  %3.0f km/h %-10s %4.1f°C\n",
			p.Label, p.WaveHeight, p.WindSpeed, p.WindDirection, p.SeaTemp)
	}

	section(&b, "Prévisions 7 jours")
	for _, d := range r.Daily {
		fmt.Fprintf(&b, "  %s %s  vagues max %.1f m  %s / %s\n",
			d.Date, d.Verdict.Icon, d.WaveMax, temp(d.TempMin), temp(d.TempMax))
	}

	writeSpecies(&b, r.Species)

	if len(r.QualityFlags) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Données suspectes: " + strings.Join(r.QualityFlags, ", ")))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Species prints scored species, most likely first.
func Species(w io.Writer, results []forecast.CatchabilityResult) error {
	var b strings.Builder
	writeSpecies(&b, results)
	_, err := io.WriteString(w, b.String())
	return err
}

// Catalog prints the species catalog.
func Catalog(w io.Writer, species []forecast.Species) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Espèces"))
	b.WriteString("\n")
	for _, s := range species {
		seasons := make([]string, len(s.Seasons))
		for i, season := range s.Seasons {
			seasons[i] = string(season)
		}
		fmt.Fprintf(&b, "\n%s %s (%s)\n", s.Icon, labelStyle.Render(s.Name), s.ArabicName)
		fmt.Fprintf(&b, "  %.0f-%.0f°C, vagues ≤ %.1f m, %s\n", s.TempMin, s.TempMax, s.WaveMax, strings.Join(seasons, ", "))
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(s.Advice))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Tides prints the locally estimated tables of a city.
func Tides(w io.Writer, city cities.City, sun forecast.SunTimes, table forecast.TideTable, windows []forecast.FishingWindow) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Marées · " + city.String()))
	b.WriteString("\n")
	writeSun(&b, sun)
	writeTides(&b, table)
	writeWindows(&b, windows)
	_, err := io.WriteString(w, b.String())
	return err
}

// Cities prints the registry grouped by region.
func Cities(w io.Writer) error {
	var b strings.Builder
	groups := cities.ByRegion()
	for i, region := range cities.Regions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(region))
		b.WriteString("\n")
		for _, c := range groups[region] {
			fmt.Fprintf(&b, "  %-12s %-14s %8.4f %9.4f\n", c.Code, c.Name, c.Latitude, c.Longitude)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Status prints feed health, recent failures and archive usage.
func Status(w io.Writer, health []store.FeedHealthSummary, failures []store.FeedRun, archive *store.FeedPayloadStats) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("État des flux"))
	b.WriteString("\n")
	if len(health) == 0 {
		b.WriteString(mutedStyle.Render("  Aucune requête enregistrée"))
		b.WriteString("\n")
	}
	for _, h := range health {
		fmt.Fprintf(&b, "  %s %-8s %3d requêtes, %3d échecs\n", h.Date, h.Feed, h.TotalRuns, h.FailedRuns)
	}

	if len(failures) > 0 {
		section(&b, "Derniers échecs")
		for _, f := range failures {
			fmt.Fprintf(&b, "  %s %-8s %s  %s\n", f.StartedAt.Format("02/01 15:04"), f.Feed, f.Location, mutedStyle.Render(f.ErrorMessage))
		}
	}

	if archive != nil {
		section(&b, "Archive")
		fmt.Fprintf(&b, "  %d réponses, %.1f Ko\n", archive.TotalCount, float64(archive.TotalSizeBytes)/1024)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func section(b *strings.Builder, title string) {
	b.WriteString(sectionHeaderStyle.Render(title))
	b.WriteString("\n")
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Width(9).Render(label), value)
}

func temp(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f°C", *v)
}

func writeSun(b *strings.Builder, sun forecast.SunTimes) {
	section(b, "Soleil")
	row(b, "Lever", sun.Sunrise)
	row(b, "Coucher", sun.Sunset)
}

func writeTides(b *strings.Builder, table forecast.TideTable) {
	section(b, "Marées")
	for _, ev := range table.AllEvents {
		line := fmt.Sprintf("  %s  %-6s %.1f m  %s", ev.Time, ev.Type, ev.Height, ev.Status)
		if ev.Next {
			line = nextStyle.Render(line + "  ◀ prochaine")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, ev := range []forecast.TideEvent{table.NextHigh, table.NextLow} {
		if ev.Tomorrow {
			fmt.Fprintf(b, "  %s\n", mutedStyle.Render(fmt.Sprintf("Prochaine marée %s demain à %s", ev.Type, ev.Time)))
		}
	}
}

func writeWindows(b *strings.Builder, windows []forecast.FishingWindow) {
	section(b, "Meilleurs créneaux")
	for _, win := range windows {
		fmt.Fprintf(b, "  %s %s  %s\n", win.Icon, win.Range, mutedStyle.Render(win.Reason))
	}
}

func writeSpecies(b *strings.Builder, results []forecast.CatchabilityResult) {
	section(b, "Espèces probables")
	if len(results) == 0 {
		b.WriteString(mutedStyle.Render("  Aucune espèce dans ces conditions"))
		b.WriteString("\n")
		return
	}
	for _, res := range results {
		conf := confidenceStyle(res).Render(fmt.Sprintf("%3d%%", res.Confidence))
		fmt.Fprintf(b, "  %s %s %-20s %s\n", res.Badge(), conf, res.Species.Name, mutedStyle.Render(res.Species.Depth))
	}
}
