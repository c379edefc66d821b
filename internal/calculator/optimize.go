package calculator

import "sort"

// position is one side of the netting problem: a user and the paisa still
// outstanding, always stored as a positive magnitude.
type position struct {
	userID    string
	remaining int64
}

// OptimizeTransfers reduces a set of net balances to a short list of
// point-to-point transfers that zeroes every balance.
//
// Greedy matching: debtors and creditors are each sorted by magnitude,
// largest first, and the two cursors settle min(debt, credit) at every
// step. This produces at most n-1 transfers for n users with a nonzero
// balance. Ties in magnitude break lexicographically by user ID so the
// plan is deterministic regardless of map iteration order.
func OptimizeTransfers(balances map[string]int64) []Transfer {
	var debtors, creditors []position
	for userID, balance := range balances {
		switch {
		case balance < 0:
			debtors = append(debtors, position{userID: userID, remaining: -balance})
		case balance > 0:
			creditors = append(creditors, position{userID: userID, remaining: balance})
		}
	}

	byMagnitudeDesc := func(ps []position) func(i, j int) bool {
		return func(i, j int) bool {
			if ps[i].remaining != ps[j].remaining {
				return ps[i].remaining > ps[j].remaining
			}
			return ps[i].userID < ps[j].userID
		}
	}
	sort.Slice(debtors, byMagnitudeDesc(debtors))
	sort.Slice(creditors, byMagnitudeDesc(creditors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		if amount > 0 {
			transfers = append(transfers, Transfer{
				FromUserID:  debtor.userID,
				ToUserID:    creditor.userID,
				AmountPaisa: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining == 0 {
			i++
		}
		if creditor.remaining == 0 {
			j++
		}
	}

	return transfers
}
