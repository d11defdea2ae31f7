package tui

// pager tracks a cursor over a paged list of rows
type pager struct {
	cursor   int
	offset   int
	pageSize int
	total    int
}

func newPager(pageSize int) pager {
	return pager{pageSize: pageSize}
}

func (p *pager) reset(total int) {
	p.total = total
	p.cursor = 0
	p.offset = 0
}

// selected returns the absolute index of the highlighted row
func (p pager) selected() int {
	return p.offset + p.cursor
}

func (p pager) visibleCount() int {
	remaining := p.total - p.offset
	if remaining > p.pageSize {
		return p.pageSize
	}
	return remaining
}

// handleKey moves the cursor and reports whether the key was consumed
func (p *pager) handleKey(key string) bool {
	switch key {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		} else if p.offset > 0 {
			p.offset -= p.pageSize
			p.cursor = p.pageSize - 1
		}
	case "down", "j":
		visible := p.visibleCount()
		if p.cursor < visible-1 {
			p.cursor++
		} else if p.offset+visible < p.total {
			p.offset += p.pageSize
			p.cursor = 0
		}
	case "pgup":
		if p.offset > 0 {
			p.offset -= p.pageSize
			if p.offset < 0 {
				p.offset = 0
			}
			p.cursor = 0
		}
	case "pgdown":
		if p.offset+p.pageSize < p.total {
			p.offset += p.pageSize
			p.cursor = 0
		}
	default:
		return false
	}
	return true
}

// window returns the [start, end) range of rows on the current page
func (p pager) window() (int, int) {
	end := p.offset + p.pageSize
	if end > p.total {
		end = p.total
	}
	return p.offset, end
}
