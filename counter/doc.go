// Package counter models an 8-bit synchronous down-counter with an
// asynchronous reset and an enable gate.
//
// The register behavior lives in the pure function Next, which evaluates one
// clock edge: reset has priority over enable, enable decrements modulo 256,
// and otherwise the register holds. Comp wraps the register as a ticking
// component so that it can be clocked by a driver on a sim.Engine:
//
//	engine := sim.NewSerialEngine()
//	c := counter.MakeBuilder().WithEngine(engine).Build("Counter")
//	c.SetEnable(true)
//	c.TickNow()
//	_ = engine.Run()
//	fmt.Println(c.Value()) // 254
package counter
