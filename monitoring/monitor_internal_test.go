package monitoring

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/downcounter/counter"
	"github.com/sarchlab/downcounter/sim"
	"github.com/sarchlab/downcounter/testbench"
)

var _ = Describe("Monitor", func() {
	var (
		engine *sim.SerialEngine
		dut    *counter.Comp
		bench  *testbench.Bench
		m      *Monitor
		server *httptest.Server
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		dut = counter.MakeBuilder().WithEngine(engine).Build("Counter")
		bench = testbench.MakeBuilder().
			WithEngine(engine).
			WithDUT(dut).
			Build("Bench")

		m = NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterComponent(dut)
		m.RegisterComponent(bench)

		server = httptest.NewServer(m.router())
	})

	AfterEach(func() {
		server.Close()
	})

	get := func(path string) (int, []byte) {
		rsp, err := http.Get(server.URL + path)
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).ToNot(HaveOccurred())

		return rsp.StatusCode, body
	}

	It("should replace reserved port numbers with a random port", func() {
		Expect(NewMonitor().WithPortNumber(80).portNumber).To(Equal(0))
		Expect(NewMonitor().WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should listen on every accepted port number", func() {
		Expect(NewMonitor().listenAddress()).To(Equal(":0"))
		Expect(NewMonitor().WithPortNumber(999).listenAddress()).To(Equal(":0"))
		Expect(NewMonitor().WithPortNumber(1000).listenAddress()).
			To(Equal(":1000"))
		Expect(NewMonitor().WithPortNumber(8080).listenAddress()).
			To(Equal(":8080"))
	})

	It("should list components", func() {
		status, body := get("/api/list_components")

		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`["Counter","Bench"]`))
	})

	It("should report the current time", func() {
		status, body := get("/api/now")

		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"now":0}`))
	})

	It("should report counter lines", func() {
		dut.SetEnable(true)

		status, body := get("/api/counter/Counter")

		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"value":255,"reset":false,"enable":true}`))
	})

	It("should reject counter queries for other components", func() {
		status, _ := get("/api/counter/Bench")
		Expect(status).To(Equal(http.StatusBadRequest))

		status, _ = get("/api/counter/Nothing")
		Expect(status).To(Equal(http.StatusNotFound))
	})

	It("should tick a component", func() {
		dut.SetEnable(true)

		status, _ := get("/api/tick/Counter")
		Expect(status).To(Equal(http.StatusOK))

		Expect(engine.Run()).To(Succeed())
		Expect(dut.Value()).To(Equal(uint8(254)))
	})

	It("should serialize a component", func() {
		status, body := get("/api/component/Counter")

		Expect(status).To(Equal(http.StatusOK))
		Expect(json.Valid(body)).To(BeTrue())
	})

	It("should pause and continue the engine", func() {
		status, _ := get("/api/pause")
		Expect(status).To(Equal(http.StatusOK))

		status, _ = get("/api/continue")
		Expect(status).To(Equal(http.StatusOK))
	})

	It("should list progress bars until they complete", func() {
		bar := m.CreateProgressBar("Stimuli", 10)
		bar.IncrementFinished(4)

		_, body := get("/api/progress")
		var bars []map[string]any
		Expect(json.Unmarshal(body, &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0]["name"]).To(Equal("Stimuli"))
		Expect(bars[0]["finished"]).To(BeEquivalentTo(4))

		m.CompleteProgressBar(bar)

		_, body = get("/api/progress")
		Expect(body).To(MatchJSON(`[]`))
	})

	It("should report resource usage", func() {
		status, body := get("/api/resource")

		Expect(status).To(Equal(http.StatusOK))

		var rsp resourceRsp
		Expect(json.Unmarshal(body, &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should serve the web page", func() {
		status, body := get("/")

		Expect(status).To(Equal(http.StatusOK))
		Expect(string(body)).To(HavePrefix("<!DOCTYPE html>"))
	})

	It("should start and stop a server", func() {
		m.StartServer()
		Expect(m.URL()).To(HavePrefix("http://localhost:"))

		rsp, err := http.Get(m.URL() + "/api/now")
		Expect(err).ToNot(HaveOccurred())
		rsp.Body.Close()

		Expect(m.StopServer(context.Background())).To(Succeed())
	})
})

var _ = Describe("ProgressBar", func() {
	It("should move in-progress items to finished", func() {
		bar := &ProgressBar{Total: 5}

		bar.IncrementInProgress(3)
		bar.MoveInProgressToFinished(2)

		finished, total := bar.Progress()
		Expect(finished).To(Equal(uint64(2)))
		Expect(total).To(Equal(uint64(5)))
		Expect(bar.InProgress).To(Equal(uint64(1)))
	})
})
