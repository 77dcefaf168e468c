// Package engine wires components C1-C5 into one call: given an already
// built mapgraph.Graph, Run builds the candidate table, checks reachability,
// runs the scheduler, and returns the resulting History. It does not
// serialize the History; that is done by package logline.
//
// engine is the seam where logging starts: the core packages (zone,
// mapgraph, routing, scheduler, logline) are silent by design, so engine
// and cmd/flyinctl are the only packages importing logrus.
package engine
