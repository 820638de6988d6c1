package pricing

// DealStatus classifies a purchase relative to its item's target and
// historical low.
type DealStatus string

const (
	NoTarget      DealStatus = "no_target"
	NewRockBottom DealStatus = "new_rock_bottom"
	GoodDeal      DealStatus = "good_deal"
	CloseDeal     DealStatus = "close_deal"
	BadDeal       DealStatus = "bad_deal"
)

// Label returns the user-facing form of the status.
func (s DealStatus) Label() string {
	switch s {
	case NoTarget:
		return "No target"
	case NewRockBottom:
		return "New rock bottom!"
	case GoodDeal:
		return "Good deal"
	case CloseDeal:
		return "Close deal"
	case BadDeal:
		return "Bad deal"
	}
	return string(s)
}
