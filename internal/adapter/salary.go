package adapter

import (
	"regexp"
	"strconv"
	"strings"

	"sjsage522/jobaggregator/internal/model"
)

const currencyUSD = "USD"

var (
	integerSalaryPattern   = regexp.MustCompile(`\$?([\d,]+)(?:\s*-\s*\$?([\d,]+))?`)
	decimalSalaryPattern   = regexp.MustCompile(`\$?([\d,]+(?:\.\d+)?)(?:\s*-\s*\$?([\d,]+(?:\.\d+)?))?`)
	thousandsSalaryPattern = regexp.MustCompile(`\$?([\d,]+)K?\s*-\s*\$?([\d,]+)K?`)
)

// parseAmount parses a number with thousands separators; nil when there is none
func parseAmount(s string) *float64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func scaled(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	r := *v * factor
	return &r
}

func usdSalary(low, high *float64, period string) model.Salary {
	if low == nil && high == nil {
		return model.Salary{}
	}
	currency := currencyUSD
	return model.Salary{Min: low, Max: high, Currency: &currency, Period: &period}
}

// parseIntegerSalary reads "$50,000 - $70,000"; hourly when the text mentions an hour
func parseIntegerSalary(text string) model.Salary {
	m := integerSalaryPattern.FindStringSubmatch(text)
	if m == nil {
		return model.Salary{}
	}
	period := "year"
	if strings.Contains(strings.ToLower(text), "hour") {
		period = "hour"
	}
	return usdSalary(parseAmount(m[1]), parseAmount(m[2]), period)
}

// parseDecimalSalary reads "$25.50 - $30 an hour"; month wins over hour
func parseDecimalSalary(text string) model.Salary {
	m := decimalSalaryPattern.FindStringSubmatch(text)
	if m == nil {
		return model.Salary{}
	}
	lower := strings.ToLower(text)
	period := "year"
	if strings.Contains(lower, "hour") {
		period = "hour"
	}
	if strings.Contains(lower, "month") {
		period = "month"
	}
	return usdSalary(parseAmount(m[1]), parseAmount(m[2]), period)
}

// parseThousandsSalary reads "$80K - $120K (Employer est.)"; a range is required
func parseThousandsSalary(text string) model.Salary {
	m := thousandsSalaryPattern.FindStringSubmatch(text)
	if m == nil {
		return model.Salary{}
	}
	factor := 1.0
	if strings.Contains(text, "K") {
		factor = 1000
	}
	return usdSalary(scaled(parseAmount(m[1]), factor), scaled(parseAmount(m[2]), factor), "year")
}
