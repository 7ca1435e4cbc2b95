package ld

// Container is the in-memory form of one telemetry file: a header plus an
// ordered sequence of channels. Channel order is significant, it fixes the
// catalog and data-block layout on marshal.
//
// A Container is exclusively owned by its creator. Read and Slice always
// return containers backed by freshly allocated blocks; nothing aliases the
// source bytes or another container.
type Container struct {
	Header   Header
	Channels []Channel
}

// Channel returns the first channel with the given name.
func (c *Container) Channel(name string) (*Channel, bool) {
	for i := range c.Channels {
		if c.Channels[i].ChannelName() == name {
			return &c.Channels[i], true
		}
	}
	return nil, false
}

// recordCount is the header RecordCount invariant: the sample count of the
// densest channel, or 0 for a channel-less container.
func (c *Container) recordCount() uint32 {
	var n uint32
	for i := range c.Channels {
		if c.Channels[i].SampleCount > n {
			n = c.Channels[i].SampleCount
		}
	}
	return n
}
