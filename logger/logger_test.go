package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/relloyd/snowload/logger"
)

var _ = Describe("Logger", func() {
	log := logger.NewLogger("test-service", "debug", false)

	It("Should have `test-service` as service name", func() {
		logOutput := bytes.NewBufferString("")
		log.SetOutput(logOutput)
		log.Info("Testing")
		Expect(logOutput.String()).To(ContainSubstring("service=test-service"))
	})

	It("Should log at info level", func() {
		logOutput := bytes.NewBufferString("")
		log.SetOutput(logOutput)
		log.Info("Testing")
		Expect(logOutput.String()).To(ContainSubstring("level=info"))
	})

	It("Should log at warning level", func() {
		logOutput := bytes.NewBufferString("")
		log.SetOutput(logOutput)
		log.Warn("Testing")
		Expect(logOutput.String()).To(ContainSubstring("level=warning"))
	})

	It("Should log the message", func() {
		logOutput := bytes.NewBufferString("")
		log.SetOutput(logOutput)
		log.Error("Testing")
		Expect(logOutput.String()).To(ContainSubstring("Testing"))
		Expect(logOutput.String()).To(ContainSubstring("level=error"))
	})
})
