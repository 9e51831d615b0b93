package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
)

// baseGolden is one entry of baseconv_golden.json.
type baseGolden struct {
	Decimal    string            `json:"decimal"`
	Renderings map[string]string `json:"renderings"`
}

// byteGolden is one entry of byteconv_golden.json.
type byteGolden struct {
	Bits   string            `json:"bits"`
	Best   string            `json:"best"`
	Fields map[string]string `json:"fields"`
}

// unit is one rung of the default ladder: its name and its power of two in
// bits.
type unit struct {
	name string
	exp  uint
}

var ladder = []unit{
	{"bits", 0}, {"Bytes", 3}, {"KB", 13}, {"MB", 23},
	{"GB", 33}, {"TB", 43}, {"PB", 53}, {"EB", 63},
}

func main() {
	baseDir := flag.String("base-out", "internal/baseconv/testdata", "Output directory for the base golden file")
	byteDir := flag.String("bytes-out", "internal/byteconv/testdata", "Output directory for the magnitude golden file")
	flag.Parse()

	baseCases := []string{
		"0", "1", "255", "4095",
		"18446744073709551616",
		"10000000000000000000000000000000000000000",
		"170141183460469231731687303715884105727",
	}
	byteCases := []string{
		"0", "1", "7", "8", "9", "800", "7999", "8000", "8184", "8192",
		"81920", "8191999", "8192000", "8388608", "1000000000", "8000000000000",
		"9223372036854775808", "9214148664817921032192", "9223372036854775808000",
		"46116860184273879052345", "3626777458843887524118528",
	}

	fmt.Println("Generating golden data...")

	var bases []baseGolden
	for _, d := range baseCases {
		bases = append(bases, baseGolden{Decimal: d, Renderings: renderings(mustInt(d))})
		fmt.Printf("Generated renderings of %s\n", d)
	}
	if err := writeJSON(filepath.Join(*baseDir, "baseconv_golden.json"), bases); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var magnitudes []byteGolden
	for _, b := range byteCases {
		magnitudes = append(magnitudes, magnitude(mustInt(b)))
		fmt.Printf("Generated magnitudes of %s bits\n", b)
	}
	if err := writeJSON(filepath.Join(*byteDir, "byteconv_golden.json"), magnitudes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Successfully generated golden files")
}

func mustInt(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("generate-golden: bad case " + s)
	}
	return n
}

// renderings formats n in every base from 2 to 36. Values that fit a uint64
// go through strconv, the rest through math/big.
func renderings(n *big.Int) map[string]string {
	out := make(map[string]string, 35)
	for b := 2; b <= 36; b++ {
		if n.IsUint64() {
			out[strconv.Itoa(b)] = strconv.FormatUint(n.Uint64(), b)
		} else {
			out[strconv.Itoa(b)] = n.Text(b)
		}
	}
	return out
}

// magnitude projects a bit count into every unit, truncated to two decimals,
// and picks the best unit: the largest magnitude below 1000, or the
// smallest magnitude when none is.
func magnitude(bits *big.Int) byteGolden {
	g := byteGolden{Bits: bits.String(), Fields: make(map[string]string, len(ladder))}
	limit := decimal.NewFromInt(1000)

	var best, closest *unit
	var bestV, closestV decimal.Decimal
	for i := range ladder {
		u := &ladder[i]
		hundredths := new(big.Int).Mul(bits, big.NewInt(100))
		hundredths.Quo(hundredths, new(big.Int).Lsh(big.NewInt(1), u.exp))
		v := decimal.NewFromBigInt(hundredths, -2)
		g.Fields[u.name] = v.String()

		if v.LessThan(limit) && (best == nil || v.GreaterThan(bestV)) {
			best, bestV = u, v
		}
		if closest == nil || v.LessThan(closestV) {
			closest, closestV = u, v
		}
	}
	if best == nil {
		best, bestV = closest, closestV
	}
	g.Best = bestV.String() + " " + best.name
	return g
}

func writeJSON(filename string, v any) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return nil
}
