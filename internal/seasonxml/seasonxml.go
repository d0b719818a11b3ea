// Package seasonxml reads and writes a season as an XML document.
package seasonxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/derekprior/fixtures/internal/ident"
	"github.com/derekprior/fixtures/internal/season"
)

type seasonDoc struct {
	XMLName   xml.Name    `xml:"season"`
	Generated string      `xml:"generated,attr,omitempty"`
	Leagues   []leagueDoc `xml:"league"`
}

type leagueDoc struct {
	ID      string     `xml:"id,attr"`
	Name    string     `xml:"name,attr"`
	Teams   []teamDoc  `xml:"team"`
	Matches []matchDoc `xml:"match"`
}

type teamDoc struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type teamRef struct {
	ID string `xml:"id,attr"`
}

type matchDoc struct {
	DateTime string  `xml:"dateTime,attr"`
	Court    string  `xml:"court,attr"`
	Home     teamRef `xml:"homeTeam"`
	Away     teamRef `xml:"awayTeam"`
}

// Encode writes s as an indented XML document.
func Encode(w io.Writer, s *season.Season) error {
	doc := seasonDoc{}
	if !s.Generated.IsZero() {
		doc.Generated = s.Generated.Format(time.RFC3339)
	}
	for _, l := range s.Leagues() {
		ld := leagueDoc{ID: l.ID, Name: l.Name}
		for _, t := range l.Teams {
			ld.Teams = append(ld.Teams, teamDoc{ID: t.ID, Name: t.Name})
		}
		for _, m := range l.Matches {
			ld.Matches = append(ld.Matches, matchDoc{
				DateTime: m.DateTime.Format(time.RFC3339),
				Court:    m.Court,
				Home:     teamRef{ID: m.HomeTeamID},
				Away:     teamRef{ID: m.AwayTeamID},
			})
		}
		doc.Leagues = append(doc.Leagues, ld)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding season: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode reads a season document. League and team ids must be unique across
// the document, and every match must refer to two different teams of its
// own league.
func Decode(r io.Reader) (*season.Season, error) {
	var doc seasonDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding season: %w", err)
	}

	s := season.New()
	if doc.Generated != "" {
		t, err := time.Parse(time.RFC3339, doc.Generated)
		if err != nil {
			return nil, fmt.Errorf("invalid generated time %q: %w", doc.Generated, err)
		}
		s.Generated = t
	}

	ids := ident.NewRegistry()
	for _, ld := range doc.Leagues {
		l, err := decodeLeague(ids, ld)
		if err != nil {
			return nil, err
		}
		if err := s.Add(l); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeLeague(ids *ident.Registry, ld leagueDoc) (*season.League, error) {
	if ld.ID == "" {
		return nil, fmt.Errorf("league %q has no id", ld.Name)
	}
	if err := ids.Reserve(ld.ID); err != nil {
		return nil, fmt.Errorf("league %q: %w", ld.ID, err)
	}

	l := &season.League{ID: ld.ID, Name: ld.Name}
	for _, td := range ld.Teams {
		if td.ID == "" {
			return nil, fmt.Errorf("league %q: team %q has no id", ld.ID, td.Name)
		}
		if err := ids.Reserve(td.ID); err != nil {
			return nil, fmt.Errorf("league %q: %w", ld.ID, err)
		}
		l.Teams = append(l.Teams, season.Team{ID: td.ID, Name: td.Name})
	}

	for i, md := range ld.Matches {
		at, err := time.Parse(time.RFC3339, md.DateTime)
		if err != nil {
			return nil, fmt.Errorf("league %q match %d: invalid dateTime %q: %w", ld.ID, i+1, md.DateTime, err)
		}
		for _, id := range []string{md.Home.ID, md.Away.ID} {
			if _, ok := l.Team(id); !ok {
				return nil, fmt.Errorf("league %q match %d: unknown team %q", ld.ID, i+1, id)
			}
		}
		if md.Home.ID == md.Away.ID {
			return nil, fmt.Errorf("league %q match %d: team %q plays itself", ld.ID, i+1, md.Home.ID)
		}
		l.Matches = append(l.Matches, season.Match{
			DateTime:   at,
			Court:      md.Court,
			HomeTeamID: md.Home.ID,
			AwayTeamID: md.Away.ID,
		})
	}
	return l, nil
}

func WriteFile(path string, s *season.Season) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadFile(path string) (*season.Season, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}
