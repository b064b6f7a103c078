package menu

// ScrollUp moves the window towards the start of the list using the current
// scroll mode. It reports whether the window changed.
func (v *Viewport) ScrollUp() bool {
	if v.last < 0 {
		return v.enter()
	}
	if v.mode == ScrollStep {
		return v.stepUp()
	}
	return v.pageUp()
}

// ScrollDown moves the window towards the end of the list using the current
// scroll mode. It reports whether the window changed.
func (v *Viewport) ScrollDown() bool {
	if v.last < 0 {
		return v.enter()
	}
	if v.mode == ScrollStep {
		return v.stepDown()
	}
	return v.pageDown()
}

// enter fills an empty window from the start of the list. The first item is
// always taken, even when it is taller than the area; page mode then adds
// following items while they fit.
func (v *Viewport) enter() bool {
	if len(v.items) == 0 {
		return false
	}
	v.first, v.last = 0, 0
	v.rows = v.items[0].height
	if v.mode == ScrollPage {
		for v.last < len(v.items)-1 {
			h := v.items[v.last+1].height
			if v.rows+h > v.maxHeight {
				break
			}
			v.last++
			v.rows += h
		}
	}
	v.detached = true
	return true
}

// stepUp brings the item before the window in and drops trailing items until
// the window fits again. A tall item can push out more than one.
func (v *Viewport) stepUp() bool {
	if v.first <= 0 {
		return false
	}
	v.first--
	v.rows += v.items[v.first].height
	v.trimTail()
	return true
}

// stepDown brings the item after the window in and drops leading items until
// the window fits again.
func (v *Viewport) stepDown() bool {
	if v.last < 0 || v.last >= len(v.items)-1 {
		return false
	}
	v.last++
	v.rows += v.items[v.last].height
	v.trimHead()
	return true
}

// pageUp rebuilds the window so that it ends just before the old first item,
// taking as many preceding items as fit. Items are never split.
func (v *Viewport) pageUp() bool {
	if v.first <= 0 {
		return false
	}
	anchor := v.first - 1
	v.first, v.last = anchor, anchor
	v.rows = v.items[anchor].height
	for v.first > 0 {
		h := v.items[v.first-1].height
		if v.rows+h > v.maxHeight {
			break
		}
		v.first--
		v.rows += h
	}
	v.detached = true
	return true
}

// pageDown rebuilds the window so that it starts just after the old last
// item, taking as many following items as fit.
func (v *Viewport) pageDown() bool {
	if v.last < 0 || v.last >= len(v.items)-1 {
		return false
	}
	anchor := v.last + 1
	v.first, v.last = anchor, anchor
	v.rows = v.items[anchor].height
	for v.last < len(v.items)-1 {
		h := v.items[v.last+1].height
		if v.rows+h > v.maxHeight {
			break
		}
		v.last++
		v.rows += h
	}
	v.detached = true
	return true
}
