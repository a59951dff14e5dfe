// Package library manages the lifecycle of Bible corpora: downloading a
// version from the getbible.net API, persisting it in the local store,
// and reconstructing it on later runs without touching the network.
//
// After a download the library pre-warms the clean-text memo for every
// book and chapter, so the first search does not pay the full
// normalization cost of the corpus.
package library
