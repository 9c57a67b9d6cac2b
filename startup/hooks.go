package startup

// RunPreinitArray invokes every preinit constructor in array order.
func RunPreinitArray(fns []func()) {
	for _, f := range fns {
		f()
	}
}

// RunInitArray invokes every init constructor in array order.
func RunInitArray(fns []func()) {
	for _, f := range fns {
		f()
	}
}

// RunFiniArray invokes the destructors in reverse array order, matching
// the teardown convention destructors are registered under.
func RunFiniArray(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
