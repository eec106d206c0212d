package feed

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

const maxErrorBody = 256

// Decode validates the response status and parses the products snapshot.
// Only an unreadable body or a missing products collection fails the whole
// snapshot; a bad entry is reported on its own Record.
func Decode(resp *Response) ([]Record, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrBadResponse)
	}

	if resp.StatusCode != http.StatusOK {
		body := string(resp.Body)
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	var snapshot Snapshot
	if err := json.Unmarshal(resp.Body, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if snapshot.Products == nil {
		return nil, fmt.Errorf("%w: missing products collection", ErrBadPayload)
	}

	raw := *snapshot.Products
	records := make([]Record, 0, len(raw))
	for i, data := range raw {
		product, err := decodeEntry(data)
		if err != nil {
			records = append(records, Record{
				Product: RemoteProduct{SKU: peekSKU(data)},
				Err:     &EntryError{Index: i, Err: err},
			})
			continue
		}
		records = append(records, Record{Product: product})
	}
	return records, nil
}

func decodeEntry(data json.RawMessage) (RemoteProduct, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return RemoteProduct{}, err
	}

	stock, err := parseStock(e.Stock)
	if err != nil {
		return RemoteProduct{}, err
	}

	return RemoteProduct{
		SKU:      e.SKU,
		Title:    e.Title,
		Price:    e.Price,
		Stock:    stock,
		Category: e.Category,
	}, nil
}

func parseStock(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return int(v), nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("stock %s is not a whole number", n)
	}
	return int(d.IntPart()), nil
}

// peekSKU reads the sku of a malformed entry for logging, if it is a string.
func peekSKU(data json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ""
	}
	var sku string
	if err := json.Unmarshal(fields["sku"], &sku); err != nil {
		return ""
	}
	return sku
}
