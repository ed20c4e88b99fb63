package store

import (
	"fmt"
	"math"
	"strings"
)

// Criticality bands of a product, from worst to best.
const (
	BandNoDMP     = "Sin DMP"
	BandNoStock   = "Sin Stock"
	BandAttention = "Atención"
	BandCaution   = "Precaución"
	BandOptimal   = "Óptimo"
)

var Bands = []string{BandNoDMP, BandNoStock, BandAttention, BandCaution, BandOptimal}

// Available stock below these fractions of the monthly mean demand falls
// into the attention and caution bands.
const (
	AttentionRatio = 0.30
	CautionRatio   = 0.70
)

const (
	VigencyYes     = "Sí"
	VigencyUnknown = "Indeterminado"
)

// CriticalityBand classifies a product by available stock against its
// monthly mean demand (dmp). nil means absent.
func CriticalityBand(available, dmp *float64) string {
	switch {
	case dmp == nil || *dmp == 0:
		return BandNoDMP
	case available == nil || *available <= 0:
		return BandNoStock
	case *available < AttentionRatio*(*dmp):
		return BandAttention
	case *available < CautionRatio*(*dmp):
		return BandCaution
	}
	return BandOptimal
}

// CoverageMonths is available/dmp rounded to one decimal, nil when either
// value is absent or dmp is zero.
func CoverageMonths(available, dmp *float64) *float64 {
	if available == nil || dmp == nil || *dmp == 0 {
		return nil
	}
	v := math.Round(*available / *dmp * 10) / 10
	return &v
}

// Vigency reports whether a contract is in force. Every non-blank end date
// counts as vigent, the indefinite marker included. Past dates are not
// compared against today.
func Vigency(endDate *string) string {
	if endDate == nil || strings.TrimSpace(*endDate) == "" {
		return VigencyUnknown
	}
	return VigencyYes
}

// bandSQL renders CriticalityBand as a CASE over the given column expressions.
func bandSQL(available, dmp string) string {
	return fmt.Sprintf(`CASE
		WHEN %[2]s IS NULL OR %[2]s = 0 THEN '%[3]s'
		WHEN %[1]s IS NULL OR %[1]s <= 0 THEN '%[4]s'
		WHEN %[1]s < %[7]g * %[2]s THEN '%[5]s'
		WHEN %[1]s < %[8]g * %[2]s THEN '%[6]s'
		ELSE '%[9]s'
	END`, available, dmp, BandNoDMP, BandNoStock, BandAttention, BandCaution,
		AttentionRatio, CautionRatio, BandOptimal)
}

// vigencySQL renders Vigency as a CASE over an end date column.
func vigencySQL(endDate string) string {
	return fmt.Sprintf(`CASE
		WHEN %[1]s IS NULL OR TRIM(%[1]s) = '' THEN '%[2]s'
		ELSE '%[3]s'
	END`, endDate, VigencyUnknown, VigencyYes)
}
