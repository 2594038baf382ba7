package understanding

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/domain"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/money"
)

// cleanModelJSON strips Markdown fences and surrounding chatter when the
// model ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// clipJSON keeps only the span from the first opening byte to the last
// closing byte, dropping any prose around the payload.
func clipJSON(s string, open, close byte) string {
	if start := strings.IndexByte(s, open); start != -1 {
		if end := strings.LastIndexByte(s, close); end > start {
			return strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

func decodeObject(raw string) (map[string]interface{}, error) {
	clean := clipJSON(cleanModelJSON(raw), '{', '}')

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("unmarshal model JSON: %w\nraw response: %s", err, raw)
	}
	return obj, nil
}

func decodeArray(raw string) ([]interface{}, error) {
	clean := clipJSON(cleanModelJSON(raw), '[', ']')

	var items []interface{}
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("unmarshal model JSON: %w\nraw response: %s", err, raw)
	}
	return items, nil
}

// parseClassification reads the uniform yes/no verdict every classification
// prompt asks for.
func parseClassification(raw string) (domain.Classification, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return domain.Classification{}, err
	}

	isStatement, err := getBoolField(obj, "is_bank_statement", true)
	if err != nil {
		return domain.Classification{}, err
	}
	reason, err := getStringField(obj, "reason", false)
	if err != nil {
		return domain.Classification{}, err
	}

	return domain.Classification{IsBankStatement: isStatement, Reason: reason}, nil
}

func parsePageIntegrity(raw string) (domain.PageIntegrity, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return domain.PageIntegrity{}, err
	}

	valid, err := getBoolField(obj, "is_valid", true)
	if err != nil {
		return domain.PageIntegrity{}, err
	}
	confidence, err := getFloat64Field(obj, "confidence", false)
	if err != nil {
		return domain.PageIntegrity{}, err
	}
	issues, err := getStringSliceField(obj, "issues_detected")
	if err != nil {
		return domain.PageIntegrity{}, err
	}
	explanation, err := getStringField(obj, "explanation", false)
	if err != nil {
		return domain.PageIntegrity{}, err
	}

	return domain.PageIntegrity{
		Valid:       valid,
		Confidence:  int(confidence),
		Issues:      issues,
		Explanation: explanation,
	}, nil
}

func parseBusinessInfo(raw string) (domain.BusinessInfo, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return domain.BusinessInfo{}, err
	}

	// Every field may legitimately come back empty; the validation layer is
	// where emptiness becomes a failure.
	name, err := getStringField(obj, "name", false)
	if err != nil {
		return domain.BusinessInfo{}, err
	}

	addressObj, err := getObjectField(obj, "address", false)
	if err != nil {
		return domain.BusinessInfo{}, err
	}

	var address domain.Address
	if addressObj != nil {
		for _, field := range []struct {
			key  string
			dest *string
		}{
			{"street", &address.Street},
			{"city", &address.City},
			{"state", &address.State},
			{"zip", &address.Zip},
			{"country", &address.Country},
		} {
			value, err := getStringField(addressObj, field.key, false)
			if err != nil {
				return domain.BusinessInfo{}, fmt.Errorf("address: %w", err)
			}
			*field.dest = value
		}
	}

	return domain.BusinessInfo{Name: name, Address: address}, nil
}

func parseBalances(raw string) (domain.BalanceAnalysis, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return domain.BalanceAnalysis{}, err
	}

	opening, err := getMoneyField(obj, "opening_balance")
	if err != nil {
		return domain.BalanceAnalysis{}, err
	}
	closing, err := getMoneyField(obj, "closing_balance")
	if err != nil {
		return domain.BalanceAnalysis{}, err
	}
	openingDate, err := getStringField(obj, "opening_date", false)
	if err != nil {
		return domain.BalanceAnalysis{}, err
	}
	closingDate, err := getStringField(obj, "closing_date", false)
	if err != nil {
		return domain.BalanceAnalysis{}, err
	}

	return domain.BalanceAnalysis{
		OpeningBalance: opening,
		OpeningDate:    openingDate,
		ClosingBalance: closing,
		ClosingDate:    closingDate,
	}, nil
}

func parseTransactions(raw string) ([]domain.Transaction, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("transaction %d is %T, want map[string]interface{}", i, item)
		}

		date, err := getStringField(obj, "date", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		description, err := getStringField(obj, "description", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		amount, err := getFloat64Field(obj, "amount", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		currency, err := getStringField(obj, "currency", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		reference, err := getStringField(obj, "reference", false)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		transactions = append(transactions, domain.Transaction{
			Date:        date,
			Description: description,
			Money:       money.FromFloat(amount, currency),
			Reference:   reference,
		})
	}

	return transactions, nil
}

func parsePages(raw string) ([]string, error) {
	items, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, len(items))
	for i, item := range items {
		page, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("page %d is %T, want string", i+1, item)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func getMoneyField(m map[string]interface{}, key string) (money.Money, error) {
	obj, err := getObjectField(m, key, true)
	if err != nil {
		return money.Money{}, err
	}
	amount, err := getFloat64Field(obj, "amount", true)
	if err != nil {
		return money.Money{}, fmt.Errorf("%s: %w", key, err)
	}
	currency, err := getStringField(obj, "currency", true)
	if err != nil {
		return money.Money{}, fmt.Errorf("%s: %w", key, err)
	}
	return money.FromFloat(amount, currency), nil
}

func getStringField(m map[string]interface{}, key string, required bool) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("missing required field %q", key)
		}
		return "", nil
	}
	switch val := v.(type) {
	case string:
		if required && strings.TrimSpace(val) == "" {
			return "", fmt.Errorf("required field %q is empty", key)
		}
		return val, nil
	default:
		return "", fmt.Errorf("field %q has type %T, want string", key, v)
	}
}

func getFloat64Field(m map[string]interface{}, key string, required bool) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int: // unlikely from encoding/json, but harmless to support
		return float64(val), nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}

func getBoolField(m map[string]interface{}, key string, required bool) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return false, fmt.Errorf("missing required field %q", key)
		}
		return false, nil
	}
	val, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q has type %T, want bool", key, v)
	}
	return val, nil
}

func getStringSliceField(m map[string]interface{}, key string) ([]string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q has type %T, want array", key, v)
	}

	values := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("field %q element %d is %T, want string", key, i, item)
		}
		values = append(values, s)
	}
	return values, nil
}

func getObjectField(m map[string]interface{}, key string, required bool) (map[string]interface{}, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return nil, fmt.Errorf("missing required field %q", key)
		}
		return nil, nil
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q has type %T, want object", key, v)
	}
	return obj, nil
}
