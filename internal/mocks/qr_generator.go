package mocks

import "github.com/stretchr/testify/mock"

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *QRGenerator) Generate(orderID int) ([]byte, error) {
	ret := m.Called(orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}
