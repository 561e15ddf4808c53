// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rtpca9539 is a container for the PCA9539 expander driver.
//
// The driver itself lives in the pca9539 package.
package rtpca9539
