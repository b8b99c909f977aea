// /home/krylon/go/src/github.com/blicero/wecker/backend/dnssd.go
// -*- mode: go; coding: utf-8; -*-
// Created on 08. 08. 2026 by Benjamin Walkenhorst
// (c) 2026 Benjamin Walkenhorst
// Time-stamp: <2026-08-30 02:58:14 krylon>

package backend

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/blicero/wecker/common"
	"github.com/grandcat/zeroconf"
)

const (
	srvName    = "Wecker"
	srvService = "_http._tcp"
	srvDomain  = "local."
)

var addrPat = regexp.MustCompile(`:(\d+)$`)

// initDNSSd announces the command interface on the local network, so
// remote controls can find the Daemon without configuration.
func (d *Daemon) initDNSSd() error {
	var (
		err          error
		port         int64
		match        []string
		instanceName = fmt.Sprintf("%s@%s",
			srvName,
			d.hostname)
	)

	if match = addrPat.FindStringSubmatch(d.listenAddr); match == nil {
		return fmt.Errorf("cannot extract port from address %q",
			d.listenAddr)
	} else if port, err = strconv.ParseInt(match[1], 10, 32); err != nil {
		d.log.Printf("[CANTHAPPEN] Cannot parse port number %q: %s\n",
			match[1],
			err.Error())
		return err
	}

	var txt = []string{
		"app=" + common.AppName,
		"version=" + common.Version,
	}

	if d.dnssd, err = zeroconf.Register(instanceName, srvService, srvDomain, int(port), txt, nil); err != nil {
		d.log.Printf("[ERROR] Cannot register service with DNS-SD: %s\n",
			err.Error())
		return err
	}

	d.log.Printf("[DEBUG] Registered %s in %s/%s\n",
		instanceName,
		srvService,
		srvDomain)

	return nil
} // func (d *Daemon) initDNSSd() error
