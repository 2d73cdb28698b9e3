package offering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web_monitor_bot/internal/domain/offering"
)

func TestParseHeading(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		want    offering.Offering
	}{
		{
			name:    "four segments",
			heading: "NATATION | N123 | Initiation adultes | Lundi 18h",
			want: offering.Offering{
				Heading:     "NATATION | N123 | Initiation adultes | Lundi 18h",
				Activity:    "NATATION",
				Code:        "N123",
				Description: "Initiation adultes",
				Schedule:    "Lundi 18h",
			},
		},
		{
			name:    "three segments",
			heading: "TRIATHLON | T45 | Perfectionnement",
			want: offering.Offering{
				Heading:     "TRIATHLON | T45 | Perfectionnement",
				Activity:    "TRIATHLON",
				Code:        "T45",
				Description: "Perfectionnement",
			},
		},
		{
			name:    "two segments",
			heading: "AQUA FITNESS | A7",
			want: offering.Offering{
				Heading:  "AQUA FITNESS | A7",
				Activity: "AQUA FITNESS",
				Code:     "A7",
			},
		},
		{
			name:    "single segment keeps heading only",
			heading: "NATATION LIBRE ADULTES",
			want: offering.Offering{
				Heading: "NATATION LIBRE ADULTES",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, offering.ParseHeading(tt.heading))
		})
	}
}

func TestKey(t *testing.T) {
	a := offering.ParseHeading("NATATION | N123 | Initiation | Lundi 18h")
	b := offering.ParseHeading("NATATION | N123 | Initiation | Mardi 19h")
	c := offering.ParseHeading("NATATION | N124 | Initiation | Lundi 18h")

	assert.Equal(t, a.Key(), b.Key(), "schedule is not part of identity")
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	offerings := []offering.Offering{
		offering.ParseHeading("NATATION | N123 | Initiation | Lundi 18h"),
		offering.ParseHeading("TRIATHLON | T45 | Perfectionnement"),
		offering.ParseHeading("NATATION | N123 | Initiation | Mardi 19h"),
	}

	unique := offering.Dedup(offerings)
	require.Len(t, unique, 2)
	assert.Equal(t, "Lundi 18h", unique[0].Schedule)
	assert.Equal(t, "TRIATHLON", unique[1].Activity)
}

func TestDedupEmpty(t *testing.T) {
	assert.Empty(t, offering.Dedup(nil))
}
