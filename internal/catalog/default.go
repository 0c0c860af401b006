package catalog

// V1 lists the first-generation game namespace.
func V1() []GameDefinition {
	return []GameDefinition{
		{Key: "flip", TargetRTP: 0.96},
		{Key: "dice", TargetRTP: 0.95},
		{Key: "mines", TargetRTP: 0.94},
		{Key: "hilo", TargetRTP: 0.95},
		{Key: "crash", TargetRTP: 0.96},
		{Key: "slots", TargetRTP: 0.94},
		{Key: "plinko", TargetRTP: 0.95},
		{Key: "blackjack", TargetRTP: 0.97},
		{Key: "progressivepoker", TargetRTP: 0.96},
		{Key: "roulette", TargetRTP: 0.973},
	}
}

// V2 lists the second-generation game namespace.
func V2() []GameDefinition {
	return []GameDefinition{
		{Key: "dice-v2", TargetRTP: 0.95},
		{Key: "multipoker-v2", TargetRTP: 0.96},
		{Key: "flip-v2", TargetRTP: 0.96},
		{Key: "blackjack-v2", TargetRTP: 0.97},
		{Key: "mines-v2", TargetRTP: 0.96},
		{Key: "cryptochartgame-v2", TargetRTP: 0.95},
		{Key: "doubleornothing-v2", TargetRTP: 0.94},
		{Key: "fancyvirtualhorseracing-v2", TargetRTP: 0.95},
		{Key: "keno-v2", TargetRTP: 0.95},
		{Key: "limbo-v2", TargetRTP: 0.95},
	}
}

// Default builds the production catalog from both namespaces.
func Default() *Catalog {
	return MustNew(V1(), V2())
}
