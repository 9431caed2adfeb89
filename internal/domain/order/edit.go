package order

import (
	"strings"

	"medstock/internal/core/apperror"
	"medstock/internal/core/types"
)

// Editable column identifiers.
const (
	FieldBackOrders      = "back_orders"
	FieldLoanBalance     = "loan_balance"
	FieldPlannedDonsGive = "planned_dons_give"
	FieldDonsReceive     = "dons_receive"
	FieldQtyToOrder      = "qty_to_order"
	FieldRemarks         = "remarks"
)

// ApplyEdit validates a user edit against a row and returns the row
// with the field updated and its derived quantities recomputed. The
// input row is not modified; a rejected edit returns it unchanged
// together with an INVALID_INPUT error.
//
// Integer fields accept optionally signed integers; a blank value
// resets them to zero. A blank qty_to_order clears the user override
// so the next recompute falls back to qty_needed.
func ApplyEdit(row OrderRow, field, value string) (OrderRow, error) {
	switch field {
	case FieldBackOrders, FieldLoanBalance, FieldPlannedDonsGive, FieldDonsReceive:
		n, err := parseQty(field, value)
		if err != nil {
			return row, err
		}
		switch field {
		case FieldBackOrders:
			row.BackOrders = n
		case FieldLoanBalance:
			row.LoanBalance = n
		case FieldPlannedDonsGive:
			row.PlannedDonsGive = n
		case FieldDonsReceive:
			row.DonsReceive = n
		}

	case FieldQtyToOrder:
		if strings.TrimSpace(value) == "" {
			row.QtyToOrder = nil
		} else {
			n, err := types.ParseEditInt(field, value)
			if err != nil {
				return row, err
			}
			row.QtyToOrder = &n
		}

	case FieldRemarks:
		row.Remarks = value
		return row, nil

	default:
		return row, apperror.NewInvalidInput(field, "column is not editable")
	}

	Recompute(&row)
	return row, nil
}

func parseQty(field, value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return types.ParseEditInt(field, value)
}
