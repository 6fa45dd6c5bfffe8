package game

const (
	ErrorDegenerateCover      = "cover %q has a degenerate size %v"
	ErrorSceneResolved        = "scene already resolved, cannot add cover %q"
	ErrorUnknownCover         = "unknown cover handle %d"
	ErrorDegenerateObstacle   = "obstacle %q has an empty box"
	ErrorInvalidAdjacentRange = "cover %q has a negative adjacent distance %v"
	ErrorAsymmetricAdjacency  = "cover %d lists %d as its %s neighbor but the link is not mutual"
)
