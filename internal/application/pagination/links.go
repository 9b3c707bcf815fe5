package pagination

// Link is one entry of a page control: a page number or an ellipsis.
type Link struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// maxUncollapsed is the largest page count rendered without ellipses.
const maxUncollapsed = 5

// PageLinks renders the page control for current out of total pages.
// Up to five pages are listed in full. Otherwise the first and last pages are
// always shown: near either edge a run of four pages is kept next to it, and in
// the middle the control is 1, …, current-1, current, current+1, …, last.
func PageLinks(current, total int) []Link {
	if total <= 0 {
		return []Link{}
	}
	current = Clamp(current, total)

	var pages []int
	switch {
	case total <= maxUncollapsed:
		pages = seq(1, total)
	case current <= 3:
		pages = append(seq(1, 4), 0, total)
	case current >= total-2:
		pages = append([]int{1, 0}, seq(total-3, total)...)
	default:
		pages = []int{1, 0, current - 1, current, current + 1, 0, total}
	}

	links := make([]Link, 0, len(pages))
	for _, p := range pages {
		if p == 0 {
			links = append(links, Link{Ellipsis: true})
			continue
		}
		links = append(links, Link{Page: p, Current: p == current})
	}
	return links
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
