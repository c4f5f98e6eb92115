package spc

const Version = "0.1.0"
