package naming

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDateVars(t *testing.T) {
	got := DeriveDateVars("2023:09:08 18:56:54")

	assert.Equal(t, Vars{
		"Y": "2023",
		"y": "23",
		"m": "09",
		"D": "08",
		"t": "185654",
		"H": "18",
		"h": "06",
		"M": "56",
		"S": "54",
		"W": "36",
		"a": "Fri",
	}, got)
}

func TestDeriveDateVars_WithOffset(t *testing.T) {
	for _, s := range []string{"2023:09:08 18:56:54+0200", "2023:09:08 18:56:54-05:00"} {
		got := DeriveDateVars(s)
		assert.Equal(t, "185654", got[KeyTime], s)
		assert.Equal(t, "18", got[KeyHour], s)
		assert.Equal(t, "08", got[KeyDay], s)
	}
}

func TestDeriveDateVars_Padding(t *testing.T) {
	got := DeriveDateVars("2005:01:02 03:04:05")

	assert.Equal(t, "2005", got[KeyYear])
	assert.Equal(t, "05", got[KeyYearShort])
	assert.Equal(t, "01", got[KeyMonth])
	assert.Equal(t, "02", got[KeyDay])
	assert.Equal(t, "030405", got[KeyTime])
	assert.Equal(t, "03", got[KeyHour12])
	assert.Equal(t, "Sun", got[KeyWeekday])
}

func TestDeriveDateVars_Hour12(t *testing.T) {
	cases := map[string]string{
		"2023:09:08 00:10:00": "00",
		"2023:09:08 01:10:00": "01",
		"2023:09:08 11:10:00": "11",
		"2023:09:08 12:10:00": "12",
		"2023:09:08 13:10:00": "01",
		"2023:09:08 23:10:00": "11",
	}
	for in, want := range cases {
		assert.Equal(t, want, DeriveDateVars(in)[KeyHour12], in)
	}
}

func TestDeriveDateVars_ISOWeek(t *testing.T) {
	// 2021-01-01 belongs to week 53 of 2020.
	assert.Equal(t, "53", DeriveDateVars("2021:01:01 12:00:00")[KeyWeek])
	assert.Equal(t, "01", DeriveDateVars("2021:01:04 12:00:00")[KeyWeek])
}

func TestDeriveDateVars_Unparsable(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	got := DeriveDateVars("not-a-date")

	assert.Empty(t, got)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "not-a-date", hook.LastEntry().Data["value"])
}

func TestDeriveDateVars_Idempotent(t *testing.T) {
	assert.Equal(t, DeriveDateVars("2024:02:29 23:59:59"), DeriveDateVars("2024:02:29 23:59:59"))
}

func TestParseDateTime_Error(t *testing.T) {
	_, err := ParseDateTime("2023-09-08T18:56:54")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnparsableDate))
}

func TestDeriveDateVars_TrailingInput(t *testing.T) {
	for _, s := range []string{
		"2023:09:08 18:56:54.123",
		"2023:09:08 18:56:54,5",
		"2023:09:08 18:56:54.5+0200",
		"2023:09:08 18:56:54 extra",
		"2023:09:08 8:56:54",
	} {
		assert.Empty(t, DeriveDateVars(s), s)
	}
}
