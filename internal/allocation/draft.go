package allocation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// sumTolerance is the absolute tolerance used when comparing the member
// principal sum against the transaction total.
var sumTolerance = decimal.RequireFromString("0.01")

// Member is one syndicate member's allocation within a draft.
type Member struct {
	Principal    decimal.Decimal
	InterestRate decimal.Decimal
}

// Draft is the transient state of a transaction being assembled: the total
// principal, the shared interest rate, and per-username member allocations.
// It is discarded once the transaction is created or abandoned.
type Draft struct {
	TotalPrincipal decimal.Decimal
	InterestRate   decimal.Decimal
	members        map[string]*Member
}

func NewDraft(totalPrincipal, interestRate decimal.Decimal) *Draft {
	return &Draft{
		TotalPrincipal: totalPrincipal,
		InterestRate:   interestRate,
		members:        make(map[string]*Member),
	}
}

// SelectFriends reconciles the member set against the given selection.
// Newly selected usernames get a zero-principal entry at the draft's current
// rate; deselected usernames are dropped. Reselecting an existing member is
// a no-op and keeps its principal.
func (d *Draft) SelectFriends(usernames []string) {
	selected := make(map[string]struct{}, len(usernames))
	for _, username := range usernames {
		selected[username] = struct{}{}
		if _, ok := d.members[username]; !ok {
			d.members[username] = &Member{
				Principal:    decimal.Zero,
				InterestRate: d.InterestRate,
			}
		}
	}

	for username := range d.members {
		if _, ok := selected[username]; !ok {
			delete(d.members, username)
		}
	}
}

// SetInterestRate changes the draft rate and rewrites every member's rate to
// match. A transaction carries a single shared rate; members cannot hold
// individually negotiated rates.
func (d *Draft) SetInterestRate(rate decimal.Decimal) {
	d.InterestRate = rate
	for _, member := range d.members {
		member.InterestRate = rate
	}
}

// SetMemberPrincipal updates one selected member's principal share. Other
// members are never auto-balanced. Unselected usernames are ignored.
func (d *Draft) SetMemberPrincipal(username string, amount decimal.Decimal) {
	if member, ok := d.members[username]; ok {
		member.Principal = amount
	}
}

// Member returns the allocation for a username, or nil if not selected.
func (d *Draft) Member(username string) *Member {
	return d.members[username]
}

// Usernames returns the selected usernames in sorted order.
func (d *Draft) Usernames() []string {
	usernames := make([]string, 0, len(d.members))
	for username := range d.members {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)
	return usernames
}

// MemberSum returns the sum of all member principal shares.
func (d *Draft) MemberSum() decimal.Decimal {
	sum := decimal.Zero
	for _, member := range d.members {
		sum = sum.Add(member.Principal)
	}
	return sum
}

// Validate checks the draft and returns a ValidationError collecting every
// failing field, or nil if the draft is consistent. It never stops at the
// first failure so callers can annotate all offending inputs at once.
func (d *Draft) Validate() error {
	fields := map[string]string{}

	if d.TotalPrincipal.LessThanOrEqual(decimal.Zero) {
		fields["total_principal_amount"] = "principal amount must be greater than zero"
	}
	if d.InterestRate.IsNegative() {
		fields["total_interest_amount"] = "interest rate must not be negative"
	}

	for _, username := range d.Usernames() {
		if d.members[username].Principal.LessThanOrEqual(decimal.Zero) {
			fields["syndicate_details."+username] = "principal amount must be greater than zero"
		}
	}

	if len(d.members) > 0 {
		diff := d.MemberSum().Sub(d.TotalPrincipal).Abs()
		if diff.GreaterThan(sumTolerance) {
			fields["syndicate_details"] = "member principal amounts must sum to the total principal amount"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
