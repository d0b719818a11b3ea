package main

const configTemplate = `# League Season Configuration
# ===========================
# This file defines the leagues, teams and fixture slots for a season.

# Times below are wall-clock times in this timezone.
timezone: Europe/London

# Random seed for team placement. 0 picks a new seed on every run; the seed
# used is printed so a good season can be reproduced.
seed: 0

# Validation settings. Each team may play at most peak_time_cap games at
# peak_time; teams in exempt_teams (by name or id) may play exempt_cap.
validation:
  peak_time: "21:00"
  peak_time_cap: 1
  exempt_cap: 2
  exempt_teams: [Parco]

# Leagues. Each league lists its teams and either:
#   fixtures: explicit matches between roster slots, or
#   strategy + rounds: generated pairings played in the listed slots.
#
# Teams are placed into roster slots at random. 'avoid' lists slots a team
# must not be given. With one_based: true, slots are counted from 1.
leagues:
  - name: Division 1
    one_based: true
    strategy: double_round_robin   # or round_robin
    teams:
      - name: Parco
        avoid: [1]
      - name: Harbour
      - name: Rovers
      - name: Athletic
    # One entry per round; each round needs a slot for every pairing.
    rounds:
      - slots:
          - {at: "2026-09-07 20:00", court: "Court 1"}
          - {at: "2026-09-07 20:00", court: "Court 2"}
      - slots:
          - {at: "2026-09-21 20:00", court: "Court 1"}
          - {at: "2026-09-21 20:00", court: "Court 2"}
      - slots:
          - {at: "2026-10-05 20:00", court: "Court 1"}
          - {at: "2026-10-05 20:00", court: "Court 2"}
      - slots:
          - {at: "2026-10-19 20:00", court: "Court 1"}
          - {at: "2026-10-19 20:00", court: "Court 2"}
      - slots:
          - {at: "2026-11-02 20:00", court: "Court 1"}
          - {at: "2026-11-02 20:00", court: "Court 2"}
      - slots:
          - {at: "2026-11-16 20:00", court: "Court 1"}
          - {at: "2026-11-16 20:00", court: "Court 2"}

  - name: Cup
    one_based: true
    teams:
      - name: Parco Reserves
      - name: Harbour Reserves
    fixtures:
      - {at: "2026-11-30 20:30", court: "Court 1", home: 1, away: 2}
      - {at: "2026-12-14 20:30", court: "Court 1", home: 2, away: 1}
`
